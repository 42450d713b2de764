package cmd

import (
	"fmt"

	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/util"
	"github.com/mbeissinger/vj-looper/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// disposable is a directory holding files vjlooper can recreate.
type disposable struct {
	flag, short string
	what        string
	dir         func() string
}

// disposables are what `clear` can remove. A crashed session leaves its mpv socket and input.conf in temp.
var disposables = []disposable{
	{flag: "logs", short: "l", what: "log files", dir: where.Logs},
	{flag: "temp", short: "t", what: "session files", dir: where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	for _, d := range disposables {
		clearCmd.Flags().BoolP(d.flag, d.short, false, "remove "+d.what)
	}
}

var clearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove log files and leftover session files",
	Example: "  " + constant.App + " clear --temp",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(disposables, func(d disposable, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(d.flag))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, d := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s removing %s...", icon.Get(icon.Progress), d.what))
			err := filesystem.API().RemoveAll(d.dir())
			erase()
			handleErr(err)

			fmt.Printf("%s %s removed\n", icon.Get(icon.Success), util.Capitalize(d.what))
		}
	},
}
