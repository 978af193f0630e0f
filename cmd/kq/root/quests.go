package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Show today's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Daily Quests"))
			fmt.Fprintln(out, ui.Muted.Render("Refreshed "+p.DailyQuests.LastRefreshed))
			for _, q := range p.DailyQuests.Quests {
				state := ""
				switch {
				case q.IsClaimed:
					state = ui.Good.Render("claimed")
				case q.Progress >= q.Target:
					state = ui.Gold.Render("ready to claim!")
				default:
					state = ui.Muted.Render(fmt.Sprintf("%d/%d", q.Progress, q.Target))
				}
				fmt.Fprintf(out, "- %s %s %s %s\n",
					ui.Key.Render(q.ID),
					q.Description,
					ui.Dim.Render(fmt.Sprintf("(%s%d)", ui.IconToken, q.Reward.Tokens)),
					state,
				)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Dim.Render("Claim with: kq quests claim <id>"))
			return nil
		},
	}

	cmd.AddCommand(newQuestsClaimCmd())
	return cmd
}

func newQuestsClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <id>",
		Short: "Claim a finished quest's reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
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

			claimed, err := svc.ClaimQuestReward(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !claimed {
				fmt.Fprintln(out, ui.Warn.Render("Nothing to claim: quest unknown, unfinished, or already claimed."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Reward claimed!"))
			fmt.Fprintln(out, ui.LabelValue("Tokens", svc.Progress().Tokens))
			return nil
		},
	}

	return cmd
}
