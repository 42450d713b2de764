package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/player"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var requiredBinaries = []string{constant.FFmpeg, constant.FFprobe, constant.MPV}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports whether the external programs playback relies on can be found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that ffmpeg, ffprobe and mpv are installed",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range requiredBinaries {
			if path, ok := player.Lookup(name).Get(); ok {
				cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(name), style.Faint(path))
			} else {
				cmd.Printf("%s %s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), style.Bold(name), style.Faint("not found"))
			}
		}

		handleErr(requireBinaries(requiredBinaries...))
	},
}

// requireBinaries prints an install hint and fails when any of names is missing from PATH.
func requireBinaries(names ...string) error {
	missing := lo.Filter(names, func(name string, _ int) bool {
		return player.Lookup(name).IsAbsent()
	})
	if len(missing) == 0 {
		return nil
	}

	printMissingDependencies(missing)
	return fmt.Errorf("missing %s", strings.Join(missing, ", "))
}

func installHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install ffmpeg mpv"
	case constant.Linux:
		return "sudo apt install ffmpeg mpv"
	case constant.Windows:
		return "scoop install ffmpeg mpv"
	case constant.Android:
		return "pkg install ffmpeg mpv"
	default:
		return ""
	}
}

func printMissingDependencies(missing []string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependencies", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%s must be on your PATH: ffmpeg decodes the clips and mpv shows them.", strings.Join(missing, ", "))

	suggestion := ""
	if hint := installHint(); hint != "" {
		suggestion = fmt.Sprintf("\nTo install them, try running:\n  %s", style.New().Foreground(color.Orange).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, suggestion)))
}
