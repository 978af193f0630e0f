package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"keyquest/internal/engine"
	"keyquest/internal/pitch"
)

// RunSession runs one lesson as an interactive terminal session. The
// analyzer must already be started for listening lesson kinds; quizzes work
// without one.
func RunSession(ctx context.Context, svc *engine.Service, an *pitch.Analyzer, lessonID string, out io.Writer) error {
	world, lesson, ok := engine.FindLesson(lessonID)
	if !ok {
		return fmt.Errorf("unknown lesson %q", lessonID)
	}
	m := newSessionModel(ctx, svc, an, world, lesson)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
