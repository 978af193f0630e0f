package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show owned themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Themes"))
			for _, id := range p.Inventory.Themes {
				if id == p.ActiveTheme {
					fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(id), ui.Good.Render("active"))
					continue
				}
				fmt.Fprintf(out, "- %s\n", ui.Key.Render(id))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Dim.Render("Switch with: kq theme equip <id>"))
			return nil
		},
	}

	cmd.AddCommand(newThemeEquipCmd())
	return cmd
}

func newThemeEquipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip <id>",
		Short: "Equip an owned theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme id is required")
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

			if err := svc.EquipTheme(ctx, args[0]); err != nil {
				return err
			}
			active := svc.Progress().ActiveTheme
			out := cmd.OutOrStdout()
			if active != args[0] {
				fmt.Fprintln(out, ui.Warn.Render("You don't own that theme yet. Visit the shop first."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Theme equipped: "+active))
			return nil
		},
	}

	return cmd
}
