package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/xid"
)

// ErrEmptyText is returned when a task would be created without any text.
var ErrEmptyText = errors.New("text is required")

// ErrInvalidText is returned for text that is not valid UTF-8. Such text
// cannot be stored as JSON without being altered.
var ErrInvalidText = errors.New("text must be valid UTF-8")

// Task represents a single to-do entry.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewTask builds an open task from raw user input.
// The text is trimmed; whitespace-only input yields ErrEmptyText.
func NewTask(raw string) (Task, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if !utf8.ValidString(text) {
		return Task{}, ErrInvalidText
	}
	return Task{ID: NewID(), Text: text}, nil
}

// NewID returns a fresh, time-ordered task identifier.
func NewID() string {
	return xid.New().String()
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("id is required")
	}

	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}

	if !utf8.ValidString(t.Text) {
		return ErrInvalidText
	}

	return nil
}
