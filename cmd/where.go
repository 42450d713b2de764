package cmd

import (
	"os"

	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/open"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/mbeissinger/vj-looper/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a path `where` can print or open.
type location struct {
	label, flag, short string
	path               func() string
	hidden             bool
}

var locations = []location{
	{label: "Config", flag: "config", short: "c", path: where.Config},
	{label: "Config file", flag: "config-file", path: where.ConfigFile, hidden: true},
	{label: "Logs", flag: "logs", short: "l", path: where.Logs},
	{label: "Temp", flag: "temp", short: "t", path: where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.SetOut(os.Stdout)

	flags := whereCmd.Flags()
	for _, loc := range locations {
		flags.BoolP(loc.flag, loc.short, false, loc.label+" path")
		if loc.hidden {
			lo.Must0(flags.MarkHidden(loc.flag))
		}
	}
	flags.BoolP("open", "o", false, "Open the directory (config by default) in the file manager")

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(loc location, _ int) string {
		return loc.flag
	})...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths of the config, log and session directories",
	Run: func(cmd *cobra.Command, args []string) {
		chosen, picked := lo.Find(locations, func(loc location) bool {
			return lo.Must(cmd.Flags().GetBool(loc.flag))
		})

		if lo.Must(cmd.Flags().GetBool("open")) {
			dir := where.Config()
			if picked {
				dir = chosen.path()
			}
			handleErr(open.Start(dir))
			return
		}

		if picked {
			cmd.Println(chosen.path())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(locations, func(loc location, _ int) bool { return loc.hidden })
		for i, loc := range visible {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(loc.label+"?"), style.Fg(color.Yellow)("--"+loc.flag))
			cmd.Println(loc.path())
		}
	},
}
