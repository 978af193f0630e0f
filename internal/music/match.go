package music

// Match policies, one per lesson kind:
//
//   - single-note drills are octave-sensitive (MatchNote): playing C5 does
//     not pass a C4 target;
//   - chord targets use letter-class superset comparison (MatchChord): every
//     chord class must sound, extra classes and octave doublings are fine;
//   - song steps are octave-insensitive (MatchClass): melodies may be played
//     in any register.

// MatchNote reports whether the exact note (class and octave) is sounding.
func MatchNote(detected NoteSet, target Note) bool {
	return detected.Contains(target)
}

// MatchClass reports whether the target's letter class is sounding in any
// octave.
func MatchClass(detected NoteSet, target Note) bool {
	_, ok := detected.Classes()[target.Class]
	return ok
}

// MatchChord reports whether the detected letter classes are a superset of
// the chord's letter classes.
func MatchChord(detected NoteSet, chord Chord) bool {
	if len(chord.Notes) == 0 {
		return false
	}
	have := detected.Classes()
	for class := range chord.Classes() {
		if _, ok := have[class]; !ok {
			return false
		}
	}
	return true
}
