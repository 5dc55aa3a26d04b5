// Package editslot tracks which note of a collection is open for in-place editing.
package editslot

// Slot holds at most one note id. Opening another id replaces the previous
// one; the zero value is an empty slot.
type Slot struct {
	id string
}

// Open puts id into the slot. An empty id closes it.
func (s *Slot) Open(id string) {
	s.id = id
}

// Close empties the slot.
func (s *Slot) Close() {
	s.id = ""
}

// ID returns the open note id or "".
func (s *Slot) ID() string {
	return s.id
}

// IsOpen reports whether id is the note being edited.
func (s *Slot) IsOpen(id string) bool {
	return id != "" && s.id == id
}
