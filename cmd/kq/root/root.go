package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "kq",
	Short:         "KeyQuest — learn piano from your terminal",
	Long:          "KeyQuest is a gamified piano tutor: it listens to your microphone, detects the notes and chords you play, and turns practice into XP, streaks and quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newOnboardCmd(),
		newStatusCmd(),
		newWorldsCmd(),
		newPracticeCmd(),
		newListenCmd(),
		newQuestsCmd(),
		newShopCmd(),
		newThemeCmd(),
		newFriendsCmd(),
		newGiftCmd(),
		newProfileCmd(),
		newDevCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
