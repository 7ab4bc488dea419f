// Package state holds the application state and the actions that are
// allowed to mutate it. Screens never touch the fields directly; they
// call an action and flush the returned persistence hint through the
// store. All methods run on the single UI goroutine, so there is no
// locking here.
package state

import (
	"time"

	"lovlearn/internal/guide"
	"lovlearn/internal/profile"
)

// Persist tells the caller which pieces of state an action changed and
// therefore need to be written back to disk.
type Persist uint8

const (
	PersistNone    Persist = 0
	PersistProfile Persist = 1 << 0
	PersistHistory Persist = 1 << 1
)

// PersistRequest is emitted as a message by screens after a mutating
// action; the app layer catches it and flushes the hinted state through
// the store.
type PersistRequest struct {
	Hint Persist
}

// Request describes one guide-generation request. It doubles as the
// "last request" descriptor so a failed search can be reissued without
// retracing the user's input.
type Request struct {
	Topic        string
	Modification string
}

// App is the single application state object. One instance exists per
// run; the TUI reads from it and mutates it only through the action
// methods below.
type App struct {
	Profile      *profile.Profile
	History      []guide.Guide
	CurrentGuide *guide.Guide

	// Loading is true while a guide generation is in flight. Submit
	// controls stay disabled until it clears.
	Loading bool

	// ErrMsg is the user-facing message for the last failed action,
	// empty when the last action succeeded.
	ErrMsg string

	// LastRequest is the most recent generation request, kept so the
	// user can retry it and so late responses can be matched against
	// the request they belong to.
	LastRequest *Request
}

// New seeds the state from whatever the store loaded at startup.
func New(p *profile.Profile, history []guide.Guide) *App {
	if history == nil {
		history = []guide.Guide{}
	}
	return &App{Profile: p, History: history}
}

// CompleteQuiz installs the profile produced by the learning-style quiz.
func (a *App) CompleteQuiz(p profile.Profile) Persist {
	a.Profile = &p
	a.ErrMsg = ""
	return PersistProfile
}

// SetAccessibility updates the two presentation flags on the profile.
func (a *App) SetAccessibility(accessibleFont, increasedSpacing bool) Persist {
	if a.Profile == nil {
		return PersistNone
	}
	a.Profile.UseAccessibleFont = accessibleFont
	a.Profile.IncreasedSpacing = increasedSpacing
	return PersistProfile
}

// ResetProfile discards the profile so the quiz can be retaken. History
// is kept; saved guides stay useful across retakes.
func (a *App) ResetProfile() Persist {
	a.Profile = nil
	a.CurrentGuide = nil
	return PersistProfile
}

// BeginSearch starts a generation request. It returns the request
// descriptor the async caller must hand back to FinishSearch, and false
// when the request may not start: no profile yet, a blank topic, or a
// request already in flight.
func (a *App) BeginSearch(topic, modification string) (Request, bool) {
	if a.Profile == nil || a.Loading || topic == "" {
		return Request{}, false
	}
	req := Request{Topic: topic, Modification: modification}
	a.Loading = true
	a.ErrMsg = ""
	a.LastRequest = &req
	return req, true
}

// Retry reissues the last request. Same refusal conditions as
// BeginSearch.
func (a *App) Retry() (Request, bool) {
	if a.LastRequest == nil {
		return Request{}, false
	}
	return a.BeginSearch(a.LastRequest.Topic, a.LastRequest.Modification)
}

// AbandonSearch clears the in-flight marker when the user navigates
// away from a pending request. The eventual response is then dropped by
// FinishSearch's staleness guard.
func (a *App) AbandonSearch() {
	a.Loading = false
	a.LastRequest = nil
}

// FinishSearch commits the outcome of a generation request. Responses
// that no longer correspond to the current request are dropped without
// touching state. The returned bool reports whether a guide was applied
// (the caller transitions to the study-guide view only then).
func (a *App) FinishSearch(req Request, content *guide.Content, err error) (Persist, bool) {
	if a.LastRequest == nil || *a.LastRequest != req {
		return PersistNone, false
	}
	a.Loading = false

	if err != nil {
		a.ErrMsg = ErrorMessage(err)
		return PersistNone, false
	}
	a.ErrMsg = ""

	if req.Modification != "" {
		return a.applyModification(content), true
	}

	g := guide.Guide{
		ID:        guide.NewID(),
		Topic:     req.Topic,
		Content:   *content,
		CreatedAt: time.Now().UTC(),
	}
	a.History = append([]guide.Guide{g}, a.History...)
	a.CurrentGuide = &g
	return PersistHistory, true
}

// applyModification replaces the open guide's content in place. The
// id, topic and creation time survive a regeneration; only the content
// changes, both on the open guide and on its history entry.
func (a *App) applyModification(content *guide.Content) Persist {
	if a.CurrentGuide == nil {
		return PersistNone
	}
	a.CurrentGuide.Content = *content
	for i := range a.History {
		if a.History[i].ID == a.CurrentGuide.ID {
			a.History[i].Content = *content
			return PersistHistory
		}
	}
	return PersistNone
}

// LoadGuide opens a history entry. Returns false when no entry carries
// the id.
func (a *App) LoadGuide(id string) bool {
	for i := range a.History {
		if a.History[i].ID == id {
			g := a.History[i]
			a.CurrentGuide = &g
			return true
		}
	}
	return false
}

// DeleteGuide removes exactly one history entry. The open guide is
// closed if it was the deleted one.
func (a *App) DeleteGuide(id string) Persist {
	for i := range a.History {
		if a.History[i].ID == id {
			a.History = append(a.History[:i], a.History[i+1:]...)
			if a.CurrentGuide != nil && a.CurrentGuide.ID == id {
				a.CurrentGuide = nil
			}
			return PersistHistory
		}
	}
	return PersistNone
}

// ClearError dismisses the current error message.
func (a *App) ClearError() {
	a.ErrMsg = ""
}
