package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		position *int
		want     Status
	}{
		{"disabled with position", true, intPtr(3), StatusDisabled},
		{"disabled without position", true, nil, StatusDisabled},
		{"enabled without position", false, nil, StatusStaging},
		{"enabled with position", false, intPtr(0), StatusActive},
		{"enabled with nonzero position", false, intPtr(7), StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.disabled, tt.position))
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusStaging.Valid())
	assert.True(t, StatusDisabled.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry("slideshow/sunset.jpg")

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "slideshow/sunset.jpg", entry.RemotePath)
	assert.Nil(t, entry.Title)
	assert.Nil(t, entry.Transcript)
	assert.Nil(t, entry.Position)
	assert.False(t, entry.Disabled)
	assert.False(t, entry.HasNarration)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, StatusStaging, entry.Status())
}

func TestEntryStatusDerivation(t *testing.T) {
	entry := NewEntry("slideshow/clip.mp4")
	assert.Equal(t, StatusStaging, entry.Status())

	entry.Position = intPtr(2)
	assert.Equal(t, StatusActive, entry.Status())

	// Disabling never changes position; the derived state flips anyway
	entry.Disabled = true
	assert.Equal(t, StatusDisabled, entry.Status())
	assert.Equal(t, 2, *entry.Position)

	entry.Disabled = false
	assert.Equal(t, StatusActive, entry.Status())
}

func TestEntryPatchIsEmpty(t *testing.T) {
	assert.True(t, EntryPatch{}.IsEmpty())

	disabled := true
	assert.False(t, EntryPatch{Disabled: &disabled}.IsEmpty())
	assert.False(t, EntryPatch{Title: Set("Sunset")}.IsEmpty())
	assert.False(t, EntryPatch{Title: Clear[string]()}.IsEmpty())
	assert.False(t, EntryPatch{Position: Clear[int]()}.IsEmpty())
}

func TestOptionalConstructors(t *testing.T) {
	set := Set(5)
	assert.True(t, set.Valid)
	assert.NotNil(t, set.Value)
	assert.Equal(t, 5, *set.Value)

	cleared := Clear[int]()
	assert.True(t, cleared.Valid)
	assert.Nil(t, cleared.Value)

	var absent Optional[int]
	assert.False(t, absent.Valid)
}
