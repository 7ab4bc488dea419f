package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func cardSchema() *Schema {
	return &Schema{
		Name:        "test-card",
		Description: "A single flashcard",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front": map[string]any{"type": "string"},
				"back":  map[string]any{"type": "string"},
				"tone":  map[string]any{"type": "string", "enum": []any{"gentle", "playful", "direct"}},
			},
			"required": []any{"front", "back"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"front":"What does a leaf use sunlight for?","back":"Making sugar from air and water","tone":"gentle"}`)
	if err := validateResponse(cardSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_OptionalFieldMayBeAbsent(t *testing.T) {
	raw := json.RawMessage(`{"front":"Chlorophyll?","back":"The green pigment that absorbs light"}`)
	if err := validateResponse(cardSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"front":"Only a question"}`)
	err := validateResponse(cardSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"front":"Q","back":"A","tone":"sarcastic"}`)
	var invErr *ErrInvalidResponse
	if !errors.As(validateResponse(cardSchema(), raw), &invErr) {
		t.Fatal("expected ErrInvalidResponse for out-of-enum value")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	var invErr *ErrInvalidResponse
	if !errors.As(validateResponse(cardSchema(), json.RawMessage(`not json`)), &invErr) {
		t.Fatal("expected ErrInvalidResponse for malformed JSON")
	}
}

func TestValidateResponse_NilSchemaSkipsValidation(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything at all`)); err != nil {
		t.Fatalf("nil schema should skip validation: %v", err)
	}
}

func TestValidateResponse_CompiledSchemaReused(t *testing.T) {
	schema := cardSchema()
	raw := json.RawMessage(`{"front":"Q","back":"A"}`)

	// The second call must hit the compiled-schema cache.
	for i := 0; i < 2; i++ {
		if err := validateResponse(schema, raw); err != nil {
			t.Fatalf("validation #%d: %v", i+1, err)
		}
	}
}
