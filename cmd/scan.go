package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/mbeissinger/vj-looper/catalog"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/mbeissinger/vj-looper/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.SetOut(os.Stdout)
	scanCmd.Flags().BoolP("json", "j", false, "Print the catalog as JSON")
	scanCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
}

// scanCmd shows which clips a session on the same directory would pick from.
var scanCmd = &cobra.Command{
	Use:   "scan <videos-dir>",
	Short: "List the clips found in a directory",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(encoder.Encode(reflector.Reflect(&catalog.Listing{})))
			return
		}

		formats := lo.Compact(viper.GetStringSlice(key.PlaybackFormats))
		filter := viper.GetString(key.PlaybackFilter)

		root, err := catalog.ValidateRoot(args[0])
		handleErr(err)

		clips, err := catalog.Build(root, formats)
		handleErr(err)
		clips = clips.Filter(filter)

		listing, err := clips.Listing(formats, filter)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encoder.Encode(listing))
			return
		}

		if clips.IsEmpty() {
			handleErr(fmt.Errorf("%w in %s (formats %v)", catalog.ErrEmptyCatalog, root, formats))
		}

		rels := lo.Map(listing.Clips, func(e catalog.Entry, _ int) string { return e.Rel })
		slices.Sort(rels)
		for _, rel := range rels {
			cmd.Printf("%s %s\n", icon.Get(icon.Video), rel)
		}

		cmd.Println()
		cmd.Println(style.Fg(color.Green)(fmt.Sprintf("%s %s in %s", icon.Get(icon.Success), util.Quantify(clips.Len(), "clip", "clips"), root)))
	},
}
