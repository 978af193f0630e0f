package root

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"keyquest/internal/audio"
	"keyquest/internal/music"
	"keyquest/internal/pitch"
	"keyquest/internal/ui"
)

func newListenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Free play: print the notes you play until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			stream, err := audio.NewDeviceManager(log).OpenMicrophone()
			if err != nil {
				return fmt.Errorf("open microphone: %w", err)
			}
			analyzer := pitch.NewAnalyzer(log)
			analyzer.Start(stream)
			defer analyzer.Stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMic, "Free play"))
			fmt.Fprintln(out, ui.Dim.Render("Play something. Ctrl+C to stop."))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sig)

			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()

			var last music.NoteSet
			for {
				select {
				case <-sig:
					fmt.Fprintln(out, "")
					return nil
				case <-ticker.C:
					notes := analyzer.CurrentNotes()
					if notes.Equal(last) {
						continue
					}
					last = notes
					if notes.Len() == 0 {
						continue
					}
					names := make([]string, 0, notes.Len())
					for _, n := range notes.Notes() {
						names = append(names, n.String())
					}
					fmt.Fprintf(out, "%s %s\n", ui.IconNote, ui.Key.Render(strings.Join(names, " ")))
				}
			}
		},
	}

	return cmd
}
