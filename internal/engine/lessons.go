package engine

import (
	"keyquest/internal/music"
	"keyquest/internal/storage"
)

// LessonKind is a closed set; each kind carries exactly one payload field on
// Lesson and graders switch over it exhaustively.
type LessonKind string

const (
	KindNoteID LessonKind = "note_identification"
	KindQuiz   LessonKind = "quiz"
	KindChord  LessonKind = "chord_identification"
	KindSong   LessonKind = "song"
	KindBoss   LessonKind = "boss"
)

type QuizQuestion struct {
	Question string
	Options  []string
	Answer   string
}

type Song struct {
	Name  string
	Notes []music.Note
}

// Lesson is one node in a world's path. Payload by kind: Notes for note
// drills and note-run bosses, Quiz for quizzes, Chord for chord lessons,
// Chords for chord-run bosses, Song for songs and song bosses.
type Lesson struct {
	ID     string
	Kind   LessonKind
	Title  string
	XP     int
	Tokens int

	Notes  []music.Note
	Quiz   []QuizQuestion
	Chord  *music.Chord
	Chords []music.Chord
	Song   *Song

	Fact string
}

type World struct {
	ID          string
	Title       string
	Description string
	Lessons     []Lesson
}

// WorldClearBonusTokens is granted the first time a world's final lesson is
// completed.
const WorldClearBonusTokens = 20

func chord(name string, notes ...string) *music.Chord {
	c := music.NewChord(name, music.MustNotes(notes...)...)
	return &c
}

var worlds = []World{
	{
		ID:          "w1",
		Title:       "The Notes Valley",
		Description: "Learn the basic notes and bring music back to the valley.",
		Lessons: []Lesson{
			{ID: "l1-1", Kind: KindNoteID, Title: "Meet C & D", XP: 50, Tokens: 1, Notes: music.MustNotes("C4", "D4"), Fact: "The piano has 88 keys in total!"},
			{ID: "l1-2", Kind: KindNoteID, Title: "Hello E, F, G", XP: 75, Tokens: 1, Notes: music.MustNotes("E4", "F4", "G4"), Fact: "The 'Middle C' is the C key closest to the middle of the piano."},
			{ID: "l1-3", Kind: KindNoteID, Title: "Introducing A & B", XP: 75, Tokens: 1, Notes: music.MustNotes("A4", "B4"), Fact: "Notes repeat in a pattern of 7 white keys and 5 black keys, called an octave."},
			{ID: "l1-4", Kind: KindQuiz, Title: "Note Review", XP: 100, Tokens: 1, Quiz: []QuizQuestion{
				{Question: "What note comes after F?", Options: []string{"E", "G", "A"}, Answer: "G"},
				{Question: "Which note comes before C?", Options: []string{"D", "A", "B"}, Answer: "B"},
			}},
			{ID: "l1-5", Kind: KindNoteID, Title: "Technique: C Major Scale", XP: 120, Tokens: 1, Notes: music.MustNotes("C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"), Fact: "The C Major scale uses only white keys."},
			{ID: "l1-6", Kind: KindNoteID, Title: "Technique: A Minor Scale", XP: 120, Tokens: 1, Notes: music.MustNotes("A4", "B4", "C5", "D5", "E5", "F5", "G5", "A5"), Fact: "A Minor is the relative minor of C Major; they share the same keys."},
			{ID: "l1-7", Kind: KindQuiz, Title: "Theory: Note Values", XP: 100, Tokens: 1, Quiz: []QuizQuestion{
				{Question: "How many beats does a Crotchet (quarter note) last for?", Options: []string{"1", "2", "4"}, Answer: "1"},
				{Question: "A Minim (half note) is held for how many beats?", Options: []string{"1", "2", "4"}, Answer: "2"},
			}},
			{ID: "l1-8", Kind: KindQuiz, Title: "Theory: Understanding Rests", XP: 100, Tokens: 1, Quiz: []QuizQuestion{
				{Question: "What does a 'rest' in music mean?", Options: []string{"Play loudly", "A moment of silence", "Play faster"}, Answer: "A moment of silence"},
			}},
			{ID: "l1-9", Kind: KindNoteID, Title: "Scale Practice", XP: 100, Tokens: 1, Notes: music.MustNotes("C4", "E4", "G4", "A4", "C5"), Fact: "Practicing scales builds finger strength and speed."},
			{ID: "l1-10", Kind: KindBoss, Title: "Valley Guardian", XP: 150, Tokens: 1, Notes: music.MustNotes("C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5")},
		},
	},
	{
		ID:          "w2",
		Title:       "Chord Peaks",
		Description: "The mountain is quiet. Bring it to life with the sound of chords!",
		Lessons: []Lesson{
			{ID: "l2-1", Kind: KindChord, Title: "C Major Chord", XP: 100, Tokens: 1, Chord: chord("C Major", "C4", "E4", "G4")},
			{ID: "l2-2", Kind: KindChord, Title: "G Major Chord", XP: 100, Tokens: 1, Chord: chord("G Major", "G4", "B4", "D5")},
			{ID: "l2-3", Kind: KindChord, Title: "Meet F Major", XP: 100, Tokens: 1, Chord: chord("F Major", "F4", "A4", "C5")},
			{ID: "l2-4", Kind: KindChord, Title: "Introducing A Minor", XP: 100, Tokens: 1, Chord: chord("A Minor", "A4", "C5", "E5")},
			{ID: "l2-5", Kind: KindQuiz, Title: "Chord Challenge", XP: 120, Tokens: 1, Quiz: []QuizQuestion{
				{Question: "What are the notes in a C Major chord?", Options: []string{"C, E, G", "C, D, E", "C, F, G"}, Answer: "C, E, G"},
				{Question: "Which of these is a minor chord?", Options: []string{"C Major", "G Major", "A Minor"}, Answer: "A Minor"},
			}},
			{ID: "l2-6", Kind: KindNoteID, Title: "Technique: C Major Arpeggio", XP: 120, Tokens: 1, Notes: music.MustNotes("C4", "E4", "G4", "C5"), Fact: "An arpeggio or 'broken chord' is a chord played one note at a time."},
			{ID: "l2-7", Kind: KindNoteID, Title: "Technique: G Major Arpeggio", XP: 120, Tokens: 1, Notes: music.MustNotes("G4", "B4", "D5", "G5")},
			{ID: "l2-8", Kind: KindQuiz, Title: "Theory: Loud & Soft", XP: 100, Tokens: 1, Quiz: []QuizQuestion{
				{Question: "What does the dynamic 'f' (forte) mean?", Options: []string{"Play quietly", "Play loudly", "Play slowly"}, Answer: "Play loudly"},
				{Question: "What does the dynamic 'p' (piano) mean?", Options: []string{"Play loudly", "Play quickly", "Play quietly"}, Answer: "Play quietly"},
			}},
			{ID: "l2-9", Kind: KindChord, Title: "Chord Switching Practice", XP: 150, Tokens: 1, Chord: chord("F Major", "F4", "A4", "C5")},
			{ID: "l2-10", Kind: KindBoss, Title: "Mountain King", XP: 200, Tokens: 1, Chords: []music.Chord{
				*chord("C Major", "C4", "E4", "G4"),
				*chord("G Major", "G4", "B4", "D5"),
				*chord("A Minor", "A4", "C5", "E5"),
				*chord("F Major", "F4", "A4", "C5"),
			}},
		},
	},
	{
		ID:          "w3",
		Title:       "The Songbook",
		Description: "Learn some real songs to impress your friends!",
		Lessons: []Lesson{
			{ID: "l3-1", Kind: KindSong, Title: "Learn: Twinkle, Twinkle", XP: 150, Tokens: 1, Song: &Song{Name: "Twinkle, Twinkle, Little Star", Notes: music.MustNotes("C4", "C4", "G4", "G4", "A4", "A4", "G4", "F4", "F4", "E4", "E4", "D4", "D4", "C4")}},
			{ID: "l3-2", Kind: KindSong, Title: "Learn: Mary Had a Little Lamb", XP: 150, Tokens: 1, Song: &Song{Name: "Mary Had a Little Lamb", Notes: music.MustNotes("E4", "D4", "C4", "D4", "E4", "E4", "E4", "D4", "D4", "D4", "E4", "G4", "G4")}},
			{ID: "l3-3", Kind: KindSong, Title: "Learn: Ode to Joy", XP: 200, Tokens: 1, Song: &Song{Name: "Ode to Joy", Notes: music.MustNotes("E4", "E4", "F4", "G4", "G4", "F4", "E4", "D4", "C4", "C4", "D4", "E4", "E4", "D4", "D4")}},
			{ID: "l3-4", Kind: KindBoss, Title: "Songbook Master", XP: 250, Tokens: 1, Song: &Song{Name: "Medley Challenge", Notes: music.MustNotes("C4", "C4", "G4", "G4", "E4", "D4", "C4", "D4", "E4", "E4", "E4", "E4", "E4", "F4", "G4")}},
		},
	},
}

// Worlds returns the full lesson catalog in play order.
func Worlds() []World {
	return worlds
}

// FindWorld returns the world with the given id.
func FindWorld(id string) (World, bool) {
	for _, w := range worlds {
		if w.ID == id {
			return w, true
		}
	}
	return World{}, false
}

// FindLesson returns a lesson and its world.
func FindLesson(id string) (World, Lesson, bool) {
	for _, w := range worlds {
		for _, l := range w.Lessons {
			if l.ID == id {
				return w, l, true
			}
		}
	}
	return World{}, Lesson{}, false
}

// finalLessonID is the id of a world's last lesson, the world-clear trigger.
func finalLessonID(w World) string {
	if len(w.Lessons) == 0 {
		return ""
	}
	return w.Lessons[len(w.Lessons)-1].ID
}

func lessonCompleted(p storage.UserProgress, lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// IsLessonUnlocked gates progression: a lesson opens when its predecessor in
// the world is complete, and a world opens when the previous world has been
// cleared. The very first lesson is always open.
func IsLessonUnlocked(p storage.UserProgress, lessonID string) bool {
	for wi, w := range worlds {
		for li, l := range w.Lessons {
			if l.ID != lessonID {
				continue
			}
			if li > 0 {
				return lessonCompleted(p, w.Lessons[li-1].ID)
			}
			if wi == 0 {
				return true
			}
			return lessonCompleted(p, finalLessonID(worlds[wi-1]))
		}
	}
	return false
}
