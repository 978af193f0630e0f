package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	cases := []struct {
		in     string
		class  string
		octave int
	}{
		{"C4", "C", 4},
		{"c4", "C", 4},
		{"F#3", "F#", 3},
		{"a#-1", "A#", -1},
		{" G5 ", "G", 5},
	}
	for _, tc := range cases {
		n, err := ParseNote(tc.in)
		require.NoError(t, err, "ParseNote(%q)", tc.in)
		assert.Equal(t, tc.class, n.Class)
		assert.Equal(t, tc.octave, n.Octave)
	}

	for _, bad := range []string{"", "H4", "C", "C#", "Cx4", "4C"} {
		_, err := ParseNote(bad)
		assert.Error(t, err, "ParseNote(%q)", bad)
	}
}

func TestMIDIAndFrequency(t *testing.T) {
	a4 := MustNote("A4")
	assert.Equal(t, 69, a4.MIDI())
	assert.InDelta(t, 440.0, a4.Frequency(), 1e-9)

	c4 := MustNote("C4")
	assert.Equal(t, 60, c4.MIDI())
	assert.InDelta(t, 261.626, c4.Frequency(), 0.01)
}

func TestFromFrequency(t *testing.T) {
	cases := map[float64]string{
		440.0:  "A4",
		261.63: "C4",
		329.63: "E4",
		392.0:  "G4",
		65.41:  "C2",
		1046.5: "C6",
	}
	for freq, want := range cases {
		n, ok := FromFrequency(freq)
		require.True(t, ok, "FromFrequency(%v)", freq)
		assert.Equal(t, want, n.String())
	}

	// Slightly detuned input still rounds to the nearest semitone.
	n, ok := FromFrequency(263.5)
	require.True(t, ok)
	assert.Equal(t, "C4", n.String())

	_, ok = FromFrequency(0)
	assert.False(t, ok)
	_, ok = FromFrequency(-10)
	assert.False(t, ok)
}

func TestNoteSetEqual(t *testing.T) {
	a := NewNoteSet(MustNotes("C4", "E4", "G4")...)
	b := NewNoteSet(MustNotes("G4", "C4", "E4")...)
	assert.True(t, a.Equal(b))

	b.Add(MustNote("C5"))
	assert.False(t, a.Equal(b))
	assert.True(t, NewNoteSet().Equal(NewNoteSet()))
}

func TestMatchPolicies(t *testing.T) {
	cMajor := NewChord("C Major", MustNotes("C4", "E4", "G4")...)

	// Superset with an octave duplicate of the root still matches.
	detected := NewNoteSet(MustNotes("C4", "E4", "G4", "C5")...)
	assert.True(t, MatchChord(detected, cMajor))

	// A missing class fails regardless of extras.
	assert.False(t, MatchChord(NewNoteSet(MustNotes("C4", "E4", "A4")...), cMajor))

	// Inversion in another register matches: classes only.
	assert.True(t, MatchChord(NewNoteSet(MustNotes("E3", "G3", "C4")...), cMajor))

	// Note drills are octave-sensitive.
	assert.True(t, MatchNote(NewNoteSet(MustNote("C4")), MustNote("C4")))
	assert.False(t, MatchNote(NewNoteSet(MustNote("C5")), MustNote("C4")))

	// Song steps are octave-insensitive.
	assert.True(t, MatchClass(NewNoteSet(MustNote("C5")), MustNote("C4")))
	assert.False(t, MatchClass(NewNoteSet(MustNote("D5")), MustNote("C4")))
}
