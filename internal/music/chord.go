package music

// Chord is a named target of three or more notes for chord lessons.
type Chord struct {
	Name  string
	Notes []Note
}

func NewChord(name string, notes ...Note) Chord {
	return Chord{Name: name, Notes: notes}
}

// Classes returns the distinct letter classes of the chord.
func (c Chord) Classes() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Notes))
	for _, n := range c.Notes {
		out[n.Class] = struct{}{}
	}
	return out
}
