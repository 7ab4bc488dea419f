package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lovlearn/internal/llm"
)

// EventRepo records and queries LLM request events. It implements
// llm.EventSink for the logging middleware.
type EventRepo struct {
	db *sql.DB
}

var _ llm.EventSink = (*EventRepo)(nil)

// LLMEventRecord is one logged LLM call.
type LLMEventRecord struct {
	ID           string
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AppendLLMRequest records an LLM API call event.
func (r *EventRepo) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(id, timestamp, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339),
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		boolToInt(ev.Success), ev.ErrorMessage,
		ev.RequestBody, ev.ResponseBody)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// RecentLLMEvents returns the newest events, most recent first.
func (r *EventRepo) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEventRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, provider, model, purpose, input_tokens,
		       output_tokens, latency_ms, success, COALESCE(error_message, '')
		FROM llm_events ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		var rec LLMEventRecord
		var ts string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetLLMEvent returns one event with its captured request and response
// bodies, or nil when the id is unknown. A unique id prefix is enough.
func (r *EventRepo) GetLLMEvent(ctx context.Context, id string) (*LLMEventRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, provider, model, purpose, input_tokens,
		       output_tokens, latency_ms, success, COALESCE(error_message, ''),
		       COALESCE(request_body, ''), COALESCE(response_body, '')
		FROM llm_events WHERE id = ? OR id LIKE ? || '%'
		ORDER BY timestamp DESC LIMIT 1`, id, id)

	var rec LLMEventRecord
	var ts string
	var success int
	err := row.Scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
	rec.Success = success != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
