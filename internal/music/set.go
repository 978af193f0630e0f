package music

import "sort"

// NoteSet is an unordered set of notes, as produced by one analysis frame.
type NoteSet map[Note]struct{}

func NewNoteSet(notes ...Note) NoteSet {
	s := make(NoteSet, len(notes))
	for _, n := range notes {
		s[n] = struct{}{}
	}
	return s
}

func (s NoteSet) Add(n Note)           { s[n] = struct{}{} }
func (s NoteSet) Contains(n Note) bool { _, ok := s[n]; return ok }
func (s NoteSet) Len() int             { return len(s) }

// Notes returns the members sorted by pitch, then by name for stability.
func (s NoteSet) Notes() []Note {
	out := make([]Note, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MIDI() != out[j].MIDI() {
			return out[i].MIDI() < out[j].MIDI()
		}
		return out[i].String() < out[j].String()
	})
	return out
}

// Equal reports order-insensitive set equality.
func (s NoteSet) Equal(other NoteSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if _, ok := other[n]; !ok {
			return false
		}
	}
	return true
}

// Classes returns the set of letter classes present, ignoring octaves.
func (s NoteSet) Classes() map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for n := range s {
		out[n.Class] = struct{}{}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s NoteSet) Clone() NoteSet {
	out := make(NoteSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}
