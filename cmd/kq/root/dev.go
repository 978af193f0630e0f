package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"keyquest/internal/ui"
)

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Developer utilities",
		Hidden: true,
	}

	cmd.AddCommand(newDevToggleCmd(), newDevStreakCmd())
	return cmd
}

func newDevToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle dev mode (grants a pile of tokens on enable)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ToggleDevMode(ctx); err != nil {
				return err
			}
			p := svc.Progress()
			out := cmd.OutOrStdout()
			if p.IsDevMode {
				fmt.Fprintln(out, ui.Warn.Render("dev mode ON"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("dev mode off"))
			}
			fmt.Fprintln(out, ui.LabelValue("Tokens", p.Tokens))
			return nil
		},
	}

	return cmd
}

func newDevStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak <n>",
		Short: "Force the streak counter",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("streak value is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("streak must be an integer")
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

			n, _ := strconv.Atoi(args[0])
			if err := svc.SetStreak(ctx, n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", svc.Progress().Streak))
			return nil
		},
	}

	return cmd
}
