package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/ui"
)

func newOnboardCmd() *cobra.Command {
	var nickname string
	var avatar string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your player and start the adventure",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.UpdateProfile(ctx, nickname, avatar); err != nil {
				return err
			}
			if err := svc.CompleteOnboarding(ctx); err != nil {
				return err
			}
			p := svc.Progress()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPiano, "Welcome to KeyQuest, "+p.Nickname+"!"))
			fmt.Fprintln(out, ui.Muted.Render("The Notes Valley awaits. See the map with: kq worlds"))
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "display name (keeps the current one when empty)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar emoji (keeps the current one when empty)")
	return cmd
}

func newProfileCmd() *cobra.Command {
	var nickname string
	var avatar string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if nickname != "" || avatar != "" {
				if err := svc.UpdateProfile(ctx, nickname, avatar); err != nil {
					return err
				}
			}
			p := svc.Progress()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(p.Avatar, p.Nickname))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Onboarded", p.HasOnboarded))
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "set a new display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "set a new avatar emoji")
	return cmd
}
