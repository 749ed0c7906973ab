package models

// Optional is a patch field that distinguishes "absent from the patch" from
// "present but null". Zero value means the field was not supplied and the
// stored value must be left untouched; Valid with a nil Value clears the
// column.
type Optional[T any] struct {
	Valid bool
	Value *T
}

// Set returns a present Optional carrying v
func Set[T any](v T) Optional[T] {
	return Optional[T]{Valid: true, Value: &v}
}

// Clear returns a present Optional that nulls the column
func Clear[T any]() Optional[T] {
	return Optional[T]{Valid: true}
}

// EntryPatch is a partial update of an Entry's mutable fields. Disabled and
// HasNarration are plain pointers since their columns are not nullable.
type EntryPatch struct {
	Title        Optional[string]
	Transcript   Optional[string]
	Position     Optional[int]
	Disabled     *bool
	HasNarration *bool
}

// IsEmpty reports whether the patch carries no fields at all
func (p EntryPatch) IsEmpty() bool {
	return !p.Title.Valid && !p.Transcript.Valid && !p.Position.Valid &&
		p.Disabled == nil && p.HasNarration == nil
}
