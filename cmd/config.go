package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/config"
	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/icon"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/mbeissinger/vj-looper/util"
	"github.com/mbeissinger/vj-looper/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// field resolves a config key or exits, suggesting the nearest known key.
func field(name string) config.Field {
	if f, ok := config.Default[name]; ok {
		return f
	}

	nearest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	handleErr(fmt.Errorf("unknown key %s, did you mean %s?", style.Fg(color.Red)(name), style.Fg(color.Yellow)(nearest)))
	return config.Field{}
}

func completeKeys(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(config.Fields(), func(f config.Field, _ int) string { return f.Key }), cobra.ShellCompDirectiveNoFileComp
}

// store sets the values, checks that a session could still start with them and saves the config file.
// Nothing is written when the check fails.
func store(values map[string]any) error {
	previous := lo.MapValues(values, func(_ any, k string) any { return viper.Get(k) })
	for k, v := range values {
		viper.Set(k, v)
	}

	if _, err := config.Session(""); err != nil {
		for k, v := range previous {
			viper.Set(k, v)
		}
		return err
	}

	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfigAs(where.ConfigFile())
	}
	return err
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the configuration",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe every setting with its current and default value",
	Run: func(cmd *cobra.Command, args []string) {
		fields := config.Fields()
		if names := lo.Must(cmd.Flags().GetStringSlice("key")); len(names) > 0 {
			fields = lo.Map(names, func(name string, _ int) config.Field { return field(name) })
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.ToSlicePtr(fields)))
			return
		}

		for i, f := range fields {
			if i > 0 {
				cmd.Print("\n\n")
			}
			cmd.Print(f.Pretty())
		}
		cmd.Println()
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Set a value in the config file",
	Example:           "  vjlooper config set playback.duration 12\n  vjlooper config set playback.formats .mp4 .mov",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		f := field(args[0])
		value, err := f.Parse(args[1:])
		handleErr(err)

		handleErr(store(map[string]any{f.Key: value}))
		success("%s = %s", style.Fg(color.Purple)(f.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(viper.Get(field(args[0]).Key))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective configuration, defaults included, to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.ConfigFile()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfigAs(path))
		success("wrote %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.ConfigFile()

		if !lo.Must(cmd.Flags().GetBool("yes")) && util.IsTerminal() {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{Message: "Delete " + path + "?"}, &confirmed))
			if !confirmed {
				return
			}
		}

		handleErr(filesystem.API().Remove(path))
		success("deleted %s", path)
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default values in the config file",
	Args: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			return errors.New("either --key or --all must be set")
		}
		return cobra.NoArgs(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fields := config.Fields()
		if !lo.Must(cmd.Flags().GetBool("all")) {
			fields = []config.Field{field(lo.Must(cmd.Flags().GetString("key")))}
		}

		handleErr(store(lo.SliceToMap(fields, func(f config.Field) (string, any) { return f.Key, f.Value })))
		for _, f := range fields {
			success("%s = %s", style.Fg(color.Purple)(f.Key), style.Fg(color.Yellow)(fmt.Sprint(f.Value)))
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configSetCmd, configGetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	configInfoCmd.SetOut(os.Stdout)
	configGetCmd.SetOut(os.Stdout)
	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only show these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print as JSON")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("key", completeKeys))

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	configDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	configResetCmd.Flags().StringP("key", "k", "", "Key to reset")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	lo.Must0(configResetCmd.RegisterFlagCompletionFunc("key", completeKeys))
}
