package music

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Chromatic note names; index 0 is C so that MIDI number % 12 maps directly.
var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	a4Frequency = 440.0
	a4MIDI      = 69
)

// Note is a musical pitch: a letter class (optionally sharp) plus an octave,
// e.g. C4 or F#3. The zero value is not a valid note.
type Note struct {
	Class  string
	Octave int
}

func (n Note) String() string {
	return n.Class + strconv.Itoa(n.Octave)
}

// MIDI returns the MIDI note number (C4 = 60, A4 = 69).
func (n Note) MIDI() int {
	idx := classIndex(n.Class)
	if idx < 0 {
		return -1
	}
	return (n.Octave+1)*12 + idx
}

// Frequency returns the equal-tempered frequency of the note (A4 = 440 Hz).
func (n Note) Frequency() float64 {
	return a4Frequency * math.Pow(2, float64(n.MIDI()-a4MIDI)/12)
}

func classIndex(class string) int {
	for i, name := range noteNames {
		if name == class {
			return i
		}
	}
	return -1
}

// ParseNote parses a note literal such as "C4", "f#3" or "A#-1".
func ParseNote(s string) (Note, error) {
	raw := strings.TrimSpace(s)
	class := ""
	rest := ""
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'a' && c <= 'g' {
			c -= 'a' - 'A'
		}
		if i == 0 {
			if c < 'A' || c > 'G' {
				return Note{}, fmt.Errorf("invalid note %q", s)
			}
			class = string(c)
			continue
		}
		if c == '#' && len(class) == 1 {
			class += "#"
			continue
		}
		rest = raw[i:]
		break
	}
	if rest == "" {
		return Note{}, fmt.Errorf("invalid note %q: missing octave", s)
	}
	if classIndex(class) < 0 {
		return Note{}, fmt.Errorf("invalid note %q", s)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("invalid note %q: bad octave", s)
	}
	return Note{Class: class, Octave: octave}, nil
}

// MustNote is ParseNote for static catalogs; panics on a bad literal.
func MustNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// MustNotes parses a list of note literals.
func MustNotes(ss ...string) []Note {
	out := make([]Note, 0, len(ss))
	for _, s := range ss {
		out = append(out, MustNote(s))
	}
	return out
}

// FromFrequency maps a frequency to the nearest equal-tempered note.
// Returns false for frequencies that do not yield a finite semitone number.
func FromFrequency(freq float64) (Note, bool) {
	if freq <= 0 {
		return Note{}, false
	}
	semitones := 12 * math.Log2(freq/a4Frequency)
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return Note{}, false
	}
	midi := int(math.Round(semitones)) + a4MIDI
	if midi < 0 {
		return Note{}, false
	}
	return Note{
		Class:  noteNames[midi%12],
		Octave: midi/12 - 1,
	}, true
}
