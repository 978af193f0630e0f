package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/engine"
	"keyquest/internal/ui"
)

func newWorldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Show the lesson map",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			for _, w := range engine.Worlds() {
				fmt.Fprintln(out, ui.Heading(ui.IconQuest, w.Title))
				fmt.Fprintln(out, ui.Muted.Render(w.Description))
				for _, l := range w.Lessons {
					marker := "  "
					switch {
					case contains(p.CompletedLessons, l.ID):
						marker = ui.IconDone
					case !engine.IsLessonUnlocked(p, l.ID):
						marker = ui.IconLock
					default:
						marker = ui.KindIcon(l.Kind)
					}
					fmt.Fprintf(out, "  %s %s %s %s\n",
						marker,
						ui.Key.Render(l.ID),
						l.Title,
						ui.Dim.Render(fmt.Sprintf("(+%d XP)", l.XP)),
					)
				}
				fmt.Fprintln(out, "")
			}
			fmt.Fprintln(out, ui.Dim.Render("Start one with: kq practice <lesson-id>"))
			return nil
		},
	}

	return cmd
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
