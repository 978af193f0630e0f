package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/audio"
	"keyquest/internal/engine"
	"keyquest/internal/pitch"
	"keyquest/internal/tui"
	"keyquest/internal/ui"
)

func newPracticeCmd() *cobra.Command {
	var noMic bool

	cmd := &cobra.Command{
		Use:   "practice <lesson-id>",
		Short: "Start a lesson",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("lesson id is required (see: kq worlds)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			lessonID := args[0]
			_, lesson, ok := engine.FindLesson(lessonID)
			if !ok {
				return fmt.Errorf("unknown lesson %q", lessonID)
			}
			if !engine.IsLessonUnlocked(svc.Progress(), lessonID) {
				return fmt.Errorf("%s is still locked, finish the previous lesson first", lessonID)
			}

			var analyzer *pitch.Analyzer
			if lesson.Kind != engine.KindQuiz && !noMic {
				log := newLogger()
				stream, err := audio.NewDeviceManager(log).OpenMicrophone()
				if err != nil {
					return fmt.Errorf("open microphone: %w (try --no-mic for quiz lessons)", err)
				}
				analyzer = pitch.NewAnalyzer(log)
				analyzer.Start(stream)
				defer analyzer.Stop()
				fmt.Fprintln(cmd.OutOrStdout(), ui.Dim.Render(ui.IconMic+" Listening…"))
			}

			return tui.RunSession(ctx, svc, analyzer, lessonID, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&noMic, "no-mic", false, "run without opening the microphone")
	return cmd
}
