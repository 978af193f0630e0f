package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keyquest/internal/engine"
	"keyquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your progress, streak and wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(p.Avatar, p.Nickname))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.XPBar(p.XP, 30))
			fmt.Fprintln(out, ui.LabelValue("Total XP", p.XP))
			fmt.Fprintln(out, "")

			fmt.Fprintf(out, "%s %s\n", ui.IconStreak, ui.LabelValue("Streak", fmt.Sprintf("%d days", p.Streak)))
			fmt.Fprintf(out, "%s %s\n", ui.IconToken, ui.LabelValue("Tokens", p.Tokens))
			fmt.Fprintln(out, ui.LabelValue("Streak freezes", p.StreakFreezes))
			fmt.Fprintln(out, ui.LabelValue("Class credits", p.ClassCredits))

			if until, err := time.Parse(time.RFC3339, p.XPBoosts.ActiveUntil); err == nil && time.Now().Before(until) {
				left := time.Until(until).Round(time.Second)
				fmt.Fprintf(out, "%s %s\n", ui.IconBolt, ui.Gold.Render(fmt.Sprintf("XP boost active for %s", left)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" League"))
			fmt.Fprintln(out, ui.LabelValue("Tier", p.League.Tier))
			fmt.Fprintln(out, ui.LabelValue("Weekly XP", p.League.XP))
			fmt.Fprintln(out, "")

			done := len(p.CompletedLessons)
			total := 0
			for _, w := range engine.Worlds() {
				total += len(w.Lessons)
			}
			fmt.Fprintln(out, ui.LabelValue("Lessons", fmt.Sprintf("%d/%d complete", done, total)))
			fmt.Fprintln(out, ui.LabelValue("Theme", p.ActiveTheme))
			if p.IsDevMode {
				fmt.Fprintln(out, ui.Warn.Render("dev mode is ON"))
			}
			return nil
		},
	}

	return cmd
}
