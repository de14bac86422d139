// Package dialog defines the confirmation and prompt contract the shell
// core uses to ask the user something. The core never renders dialogs;
// callers supply an implementation per request.
package dialog

import (
	"context"
	"sync"
)

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Prompter asks for a line of text. ok is false when the user cancelled.
type Prompter interface {
	Prompt(ctx context.Context, title, message, placeholder, defaultValue string) (value string, ok bool, err error)
}

// Alerter shows a message that needs no answer
type Alerter interface {
	Alert(ctx context.Context, title, message string) error
}

// Service is the full dialog surface
type Service interface {
	Confirmer
	Prompter
	Alerter
}

// Kind identifies which dialog was shown
type Kind string

const (
	KindConfirm Kind = "confirm"
	KindPrompt  Kind = "prompt"
	KindAlert   Kind = "alert"
)

// Message records one dialog shown to the user
type Message struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Answers pre-supplies the user's responses
type Answers struct {
	Confirm bool
	Input   *string
}

// Scripted answers every dialog from fixed Answers and records what was
// shown. HTTP handlers build one per request from query parameters.
type Scripted struct {
	answers Answers

	mu    sync.Mutex
	shown []Message
}

// NewScripted creates a scripted dialog
func NewScripted(answers Answers) *Scripted {
	return &Scripted{answers: answers}
}

// Yes returns a dialog that confirms everything
func Yes() *Scripted {
	return NewScripted(Answers{Confirm: true})
}

// No returns a dialog that declines everything
func No() *Scripted {
	return NewScripted(Answers{})
}

// Confirm implements Confirmer
func (s *Scripted) Confirm(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.record(KindConfirm, title, message)
	return s.answers.Confirm, nil
}

// Prompt implements Prompter
func (s *Scripted) Prompt(ctx context.Context, title, message, _, _ string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.record(KindPrompt, title, message)
	if s.answers.Input == nil {
		return "", false, nil
	}
	return *s.answers.Input, true, nil
}

// Alert implements Alerter
func (s *Scripted) Alert(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.record(KindAlert, title, message)
	return nil
}

// Shown returns the dialogs presented so far
func (s *Scripted) Shown() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.shown))
	copy(out, s.shown)
	return out
}

func (s *Scripted) record(kind Kind, title, message string) {
	s.mu.Lock()
	s.shown = append(s.shown, Message{Kind: kind, Title: title, Message: message})
	s.mu.Unlock()
}
