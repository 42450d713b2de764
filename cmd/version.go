package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/player"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Git Commit" }}  {{ bold .Revision }}
  {{ faint "Build Date" }}  {{ bold .BuiltAt }}
  {{ faint "Built By" }}    {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "ffmpeg" }}      {{ bold .FFmpeg }}
  {{ faint "mpv" }}         {{ bold .MPV }}
`))

// versionCmd prints the build metadata and which external programs were found.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := struct {
			App, Version, Revision, BuiltAt, BuiltBy, OS, Arch, FFmpeg, MPV string
		}{
			App:      constant.App,
			Version:  constant.Version,
			Revision: constant.Revision,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			FFmpeg:   player.Lookup(constant.FFmpeg).OrElse("not found"),
			MPV:      player.Lookup(constant.MPV).OrElse("not found"),
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
