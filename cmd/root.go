// Package cmd implements the command-line interface of vjlooper.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/config"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, nerd, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().Float64P("duration", "d", 30, "Seconds each clip stays on screen")
	lo.Must0(viper.BindPFlag(key.PlaybackDuration, rootCmd.Flags().Lookup("duration")))

	rootCmd.PersistentFlags().StringSliceP("format", "f", []string{".mp4"}, "Accepted file name suffixes (case-sensitive)")
	lo.Must0(viper.BindPFlag(key.PlaybackFormats, rootCmd.PersistentFlags().Lookup("format")))

	rootCmd.PersistentFlags().StringP("filter", "m", "", "Only play clips whose relative path fuzzy-matches this query")
	lo.Must0(viper.BindPFlag(key.PlaybackFilter, rootCmd.PersistentFlags().Lookup("filter")))

	rootCmd.Flags().BoolP("fullscreen", "F", false, "Open the video window fullscreen")
	lo.Must0(viper.BindPFlag(key.DisplayFullscreen, rootCmd.Flags().Lookup("fullscreen")))

	rootCmd.Flags().Uint64("seed", 0, "Seed clip selection for a reproducible order (0 picks a random seed)")
	lo.Must0(viper.BindPFlag(key.PlaybackSeed, rootCmd.Flags().Lookup("seed")))

	rootCmd.Flags().Bool("tui", true, "Show the status screen when attached to a terminal")
	lo.Must0(viper.BindPFlag(key.TUIEnable, rootCmd.Flags().Lookup("tui")))
}

// rootCmd plays random clips from a directory until the user quits.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [flags] <videos-dir>",
	Short: "Play random clips from a directory on a loop",
	Long: style.New().Bold(true).Foreground(color.HiPurple).Render(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Random looping video wall for VJ sets and installations") + "\n\n" +
		"Each clip plays for a fixed time at its native frame rate and loops if it is shorter.\n" +
		"Press ENTER to skip to another clip and ESC to quit, in the video window or the terminal.",
	Example: "  " + constant.App + " ~/visuals\n  " + constant.App + " -d 10 -f .mp4,.mov -F /media/wall",
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("version") {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(requireBinaries(constant.FFmpeg, constant.FFprobe, constant.MPV))

		conf, err := config.Session(args[0])
		handleErr(err)
		handleErr(play(cmd.Context(), conf))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
