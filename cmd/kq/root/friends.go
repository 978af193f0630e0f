package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"keyquest/internal/storage"
	"keyquest/internal/ui"
)

func newFriendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Show the friends leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := svc.Progress()
			out := cmd.OutOrStdout()

			// You compete against your friends on total XP.
			board := make([]storage.Friend, 0, len(p.Friends)+1)
			board = append(board, storage.Friend{ID: "you", Name: p.Nickname + " (you)", XP: p.XP, Avatar: p.Avatar})
			board = append(board, p.Friends...)
			sort.SliceStable(board, func(i, j int) bool { return board[i].XP > board[j].XP })

			fmt.Fprintln(out, ui.Heading(ui.IconFriend, "Leaderboard"))
			for i, f := range board {
				name := f.Name
				if f.ID == "you" {
					name = ui.Gold.Render(name)
				}
				fmt.Fprintf(out, "%2d. %s %s %s\n", i+1, f.Avatar, name, ui.Muted.Render(fmt.Sprintf("%d XP", f.XP)))
			}
			return nil
		},
	}

	cmd.AddCommand(newFriendsAddCmd())
	return cmd
}

func newFriendsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a friend by name",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("friend name is required")
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

			f, err := svc.AddFriend(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Added %s %s!", ui.IconDone, f.Avatar, f.Name)))
			return nil
		},
	}

	return cmd
}
