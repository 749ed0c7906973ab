package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the derived lifecycle state of an entry. It is a pure function of
// the disabled flag and the position column and is never stored independently.
type Status string

// Entry lifecycle states
const (
	StatusActive   Status = "active"
	StatusStaging  Status = "staging"
	StatusDisabled Status = "disabled"
)

// Valid reports whether s is one of the three known states
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusStaging, StatusDisabled:
		return true
	}
	return false
}

// StatusOf derives the lifecycle state from the two stored fields
func StatusOf(disabled bool, position *int) Status {
	switch {
	case disabled:
		return StatusDisabled
	case position == nil:
		return StatusStaging
	default:
		return StatusActive
	}
}

// Entry represents one slideshow unit backed by a remote media object
type Entry struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	RemotePath   string    `json:"remote_path" gorm:"type:text;not null;uniqueIndex;column:remote_path" validate:"required"`
	Title        *string   `json:"title,omitempty" gorm:"type:text;column:title"`
	Transcript   *string   `json:"transcript,omitempty" gorm:"type:text;column:transcript"`
	Position     *int      `json:"position,omitempty" gorm:"type:integer;column:position"`
	Disabled     bool      `json:"disabled" gorm:"type:integer;not null;default:0;column:disabled"`
	HasNarration bool      `json:"has_narration" gorm:"type:integer;not null;default:0;column:has_narration"`
	CreatedAt    time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewEntry creates a new staging Entry for a remote path with generated UUID
// and timestamps. Position starts unset, so the entry derives as staging.
func NewEntry(remotePath string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:         uuid.New(),
		RemotePath: remotePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Status returns the derived lifecycle state
func (e *Entry) Status() Status {
	return StatusOf(e.Disabled, e.Position)
}
