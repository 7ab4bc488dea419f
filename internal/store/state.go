package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"lovlearn/internal/guide"
	"lovlearn/internal/profile"
)

// Fixed state keys. Two named entries, exactly like the web app's
// localStorage layout.
const (
	keyProfile = "profile"
	keyHistory = "history"
)

// State is everything restored at startup.
type State struct {
	// Profile is nil when the learner has not taken the quiz yet.
	Profile *profile.Profile

	// History is the saved guides, newest first. Never nil.
	History []guide.Guide
}

// StateRepo persists the profile and guide history as whole-value writes
// under fixed keys.
type StateRepo interface {
	// Load restores persisted state. A corrupt entry is logged and
	// treated as absent — Load never fails because of bad data, only
	// on database errors.
	Load(ctx context.Context) (State, error)

	// SaveProfile overwrites the stored profile.
	SaveProfile(ctx context.Context, p profile.Profile) error

	// ClearProfile removes the stored profile, e.g. before a quiz retake.
	ClearProfile(ctx context.Context) error

	// SaveHistory overwrites the stored history.
	SaveHistory(ctx context.Context, history []guide.Guide) error
}

type stateRepo struct {
	db *sql.DB
}

func (r *stateRepo) Load(ctx context.Context) (State, error) {
	st := State{History: []guide.Guide{}}

	raw, err := r.get(ctx, keyProfile)
	if err != nil {
		return st, err
	}
	if raw != "" {
		var p profile.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			fmt.Fprintf(os.Stderr, "warning: discarding unreadable stored profile: %v\n", err)
		} else {
			st.Profile = &p
		}
	}

	raw, err = r.get(ctx, keyHistory)
	if err != nil {
		return st, err
	}
	if raw != "" {
		var history []guide.Guide
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			fmt.Fprintf(os.Stderr, "warning: discarding unreadable stored history: %v\n", err)
		} else {
			st.History = history
		}
	}

	return st, nil
}

func (r *stateRepo) SaveProfile(ctx context.Context, p profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return r.put(ctx, keyProfile, string(data))
}

func (r *stateRepo) ClearProfile(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, keyProfile)
	if err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (r *stateRepo) SaveHistory(ctx context.Context, history []guide.Guide) error {
	if history == nil {
		history = []guide.Guide{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return r.put(ctx, keyHistory, string(data))
}

func (r *stateRepo) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read state %q: %w", key, err)
	}
	return value, nil
}

func (r *stateRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write state %q: %w", key, err)
	}
	return nil
}
