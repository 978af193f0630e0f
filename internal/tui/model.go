package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keyquest/internal/engine"
	"keyquest/internal/music"
	"keyquest/internal/pitch"
	"keyquest/internal/ui"
)

const pollInterval = 100 * time.Millisecond

// step is one unit of grading. Exactly one of match/quiz is set: note,
// chord and song steps listen for played notes, quiz steps take a number
// key.
type step struct {
	prompt string
	match  func(music.NoteSet) bool
	quiz   *engine.QuizQuestion
}

type sessionModel struct {
	ctx    context.Context
	svc    *engine.Service
	an     *pitch.Analyzer
	world  engine.World
	lesson engine.Lesson

	steps []step
	idx   int

	detected music.NoteSet
	lastLog  string

	completing bool
	result     *engine.CompleteResult
	err        error
}

type tickMsg time.Time

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

func newSessionModel(ctx context.Context, svc *engine.Service, an *pitch.Analyzer, world engine.World, lesson engine.Lesson) sessionModel {
	return sessionModel{
		ctx:     ctx,
		svc:     svc,
		an:      an,
		world:   world,
		lesson:  lesson,
		steps:   buildSteps(lesson),
		lastLog: "Session started.",
	}
}

// buildSteps expands a lesson into graded steps. Note drills want the exact
// key, songs accept any octave, and chords accept any voicing that covers
// the chord tones.
func buildSteps(l engine.Lesson) []step {
	var out []step
	switch {
	case l.Kind == engine.KindQuiz:
		for i := range l.Quiz {
			q := l.Quiz[i]
			out = append(out, step{prompt: q.Question, quiz: &q})
		}
	case l.Kind == engine.KindChord:
		if l.Chord != nil {
			c := *l.Chord
			out = append(out, step{
				prompt: fmt.Sprintf("Play the %s chord", c.Name),
				match:  func(s music.NoteSet) bool { return music.MatchChord(s, c) },
			})
		}
	case l.Kind == engine.KindSong, l.Song != nil:
		if l.Song != nil {
			for _, n := range l.Song.Notes {
				note := n
				out = append(out, step{
					prompt: fmt.Sprintf("Play %s", note.Class),
					match:  func(s music.NoteSet) bool { return music.MatchClass(s, note) },
				})
			}
		}
	case len(l.Chords) > 0:
		for _, c := range l.Chords {
			c := c
			out = append(out, step{
				prompt: fmt.Sprintf("Play the %s chord", c.Name),
				match:  func(s music.NoteSet) bool { return music.MatchChord(s, c) },
			})
		}
	default:
		for _, n := range l.Notes {
			note := n
			out = append(out, step{
				prompt: fmt.Sprintf("Play %s", note),
				match:  func(s music.NoteSet) bool { return music.MatchNote(s, note) },
			})
		}
	}
	return out
}

func (m sessionModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m sessionModel) completeCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteLesson(m.ctx, m.lesson.ID, m.lesson.XP, m.lesson.Tokens, m.world.ID)
		return completedMsg{res: res, err: err}
	}
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.result != nil || m.completing {
			return m, nil
		}
		if m.an != nil {
			m.detected = m.an.CurrentNotes()
		}
		if m.idx < len(m.steps) {
			st := m.steps[m.idx]
			if st.match != nil && st.match(m.detected) {
				m.lastLog = ui.Good.Render(ui.IconDone + " " + st.prompt)
				m.idx++
				if m.idx >= len(m.steps) {
					m.completing = true
					return m, m.completeCmd()
				}
			}
		}
		return m, tickCmd()
	case completedMsg:
		m.completing = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.result = msg.res
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}
		if m.result != nil {
			// Any key dismisses the result screen.
			return m, tea.Quit
		}
		if m.idx < len(m.steps) {
			if st := m.steps[m.idx]; st.quiz != nil {
				return m.answerQuiz(st, key)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m sessionModel) answerQuiz(st step, key string) (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(st.quiz.Options) {
		return m, nil
	}
	if st.quiz.Options[n-1] != st.quiz.Answer {
		m.lastLog = ui.Warn.Render("Not quite, try again!")
		return m, nil
	}
	m.lastLog = ui.Good.Render(ui.IconDone + " Correct!")
	m.idx++
	if m.idx >= len(m.steps) {
		m.completing = true
		return m, m.completeCmd()
	}
	return m, nil
}

func (m sessionModel) View() string {
	if m.err != nil {
		return ui.Bad.Render("Error: "+m.err.Error()) + "\n\nPress q to quit.\n"
	}
	if m.result != nil {
		return m.renderResult()
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.KindIcon(m.lesson.Kind), m.lesson.Title))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.world.Title))
	b.WriteString("\n\n")

	if len(m.steps) == 0 {
		b.WriteString("Nothing to do here.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Step %d of %d\n\n", m.idx+1, len(m.steps)))
	st := m.steps[m.idx]
	if st.quiz != nil {
		b.WriteString(ui.H2.Render(st.quiz.Question))
		b.WriteString("\n")
		for i, opt := range st.quiz.Options {
			b.WriteString(fmt.Sprintf("  %s %s\n", ui.Key.Render(fmt.Sprintf("%d.", i+1)), opt))
		}
		b.WriteString("\n" + ui.Dim.Render("Press a number to answer. q to quit.") + "\n")
	} else {
		b.WriteString(ui.H2.Render(st.prompt))
		b.WriteString("\n\n")
		b.WriteString(ui.IconMic + " Hearing: " + renderNotes(m.detected) + "\n")
		b.WriteString("\n" + ui.Dim.Render("Play into your mic. q to quit.") + "\n")
	}
	b.WriteString("\n" + m.lastLog + "\n")
	return b.String()
}

func (m sessionModel) renderResult() string {
	r := m.result
	var lines []string
	lines = append(lines, ui.Heading(ui.IconSparkle, "Lesson complete!"))
	xp := fmt.Sprintf("+%d XP", r.XPAwarded)
	if r.Boosted {
		xp += " " + ui.IconBolt + " boosted"
	}
	lines = append(lines, ui.Good.Render(xp))
	if r.LevelUp {
		lines = append(lines, ui.BadgeLevelUp+fmt.Sprintf(" %d → %d", r.LevelBefore, r.LevelAfter))
	}
	tokens := r.Tokens + r.BonusTokens
	if tokens > 0 {
		t := fmt.Sprintf("%s +%d tokens", ui.IconToken, tokens)
		if r.BonusTokens > 0 {
			t += fmt.Sprintf(" (%s world clear bonus +%d)", ui.IconTrophy, r.BonusTokens)
		}
		lines = append(lines, ui.Gold.Render(t))
	}
	lines = append(lines, fmt.Sprintf("%s Streak: %d", ui.IconStreak, r.Streak))
	if m.lesson.Fact != "" {
		lines = append(lines, "", ui.Muted.Render("Did you know? "+m.lesson.Fact))
	}
	lines = append(lines, "", ui.Dim.Render("Press any key to exit."))
	return ui.Panel.Render(strings.Join(lines, "\n")) + "\n"
}

func renderNotes(s music.NoteSet) string {
	if s.Len() == 0 {
		return ui.Dim.Render("(silence)")
	}
	names := make([]string, 0, s.Len())
	for _, n := range s.Notes() {
		names = append(names, n.String())
	}
	return ui.Key.Render(strings.Join(names, " "))
}
