package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keyquest/internal/engine"
	"keyquest/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the token shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconShop, "Shop"))
			fmt.Fprintf(out, "%s %s\n\n", ui.IconToken, ui.LabelValue("Balance", p.Tokens))
			for _, item := range engine.ShopCatalog() {
				tag := ""
				if item.Kind == engine.ItemTheme {
					for _, owned := range p.Inventory.Themes {
						if owned == item.ID {
							tag = " " + ui.Good.Render("owned")
						}
					}
				}
				fmt.Fprintf(out, "- %s %s %s%s\n",
					ui.Key.Render(item.ID),
					item.Name,
					ui.Gold.Render(fmt.Sprintf("%s%d", ui.IconToken, item.Cost)),
					tag,
				)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Dim.Render("Buy with: kq shop buy <id>"))
			return nil
		},
	}

	cmd.AddCommand(newShopBuyCmd())
	return cmd
}

func newShopBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy an item with tokens",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item id is required")
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

			itemID := args[0]
			ok, err := svc.PurchaseItem(ctx, itemID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, ui.Warn.Render("Purchase declined: unknown item, not enough tokens, or already owned."))
				return nil
			}
			item, _ := engine.ItemByID(itemID)
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Bought %s!", ui.IconDone, item.Name)))
			fmt.Fprintln(out, ui.LabelValue("Tokens left", svc.Progress().Tokens))
			return nil
		},
	}

	return cmd
}
