package state

import (
	"errors"
	"fmt"

	"lovlearn/internal/llm"
)

// ErrorMessage maps a generation failure to the message shown to the
// learner. This is the only place failures become words: a missing key
// names the configuration to fix, rate limiting asks for patience, and
// everything else gets a gentle generic nudge to try again.
func ErrorMessage(err error) string {
	var missing *llm.ErrMissingCredential
	if errors.As(err, &missing) {
		if missing.EnvVar != "" {
			return fmt.Sprintf("No API key is set up for the %s provider. Set %s and restart.", missing.Provider, missing.EnvVar)
		}
		return fmt.Sprintf("No API key is set up for the %s provider.", missing.Provider)
	}

	var rate *llm.ErrRateLimit
	if errors.As(err, &rate) {
		return "The study-guide service is busy right now. Please wait a moment and try again."
	}

	var empty *llm.ErrEmptyResponse
	var invalid *llm.ErrInvalidResponse
	var truncated *llm.ErrMaxTokensExceeded
	if errors.As(err, &empty) || errors.As(err, &invalid) || errors.As(err, &truncated) {
		return "I couldn't put a guide together that time. Give it another try!"
	}

	var upstream *llm.ErrUpstream
	if errors.As(err, &upstream) {
		return "Something went wrong reaching the study-guide service. Please try again."
	}

	return "Something unexpected went wrong. Please try again."
}
