package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/engine"
	"keyquest/internal/ui"
)

func newGiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gift <friend>",
		Short: "Send a streak freeze to a friend",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("friend name or id is required")
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

			friend, ok := svc.FindFriend(args[0])
			if !ok {
				return fmt.Errorf("no friend matching %q", args[0])
			}
			sent, err := svc.SendGift(ctx, friend.ID, engine.ItemStreakFreeze)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !sent {
				fmt.Fprintln(out, ui.Warn.Render("You have no streak freezes to give. Buy one in the shop first."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Sent a streak freeze to %s %s!", ui.IconGift, friend.Avatar, friend.Name)))
			fmt.Fprintln(out, ui.LabelValue("Freezes left", svc.Progress().StreakFreezes))
			return nil
		},
	}

	return cmd
}
