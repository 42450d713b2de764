// Package config loads vjlooper settings from defaults, the config file, .env and the environment.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"text/template"

	"github.com/mbeissinger/vj-looper/color"
	"github.com/mbeissinger/vj-looper/constant"
	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// fields lists every setting in the order `config info` prints them.
var fields = []Field{
	{key.PlaybackDuration, 30.0, "Seconds each clip stays on screen.\nShort clips are looped until this is reached"},
	{key.PlaybackFormats, []string{".mp4"}, "File name suffixes considered playable (case-sensitive)"},
	{key.PlaybackFilter, "", "Fuzzy filter applied to paths relative to the videos directory.\nEmpty plays everything"},
	{key.PlaybackFallbackFPS, 30.0, "Frame rate assumed when a clip does not report a usable one"},
	{key.PlaybackPollTimeout, 1, "Milliseconds to wait for a key press after each frame"},
	{key.PlaybackMaxFailures, 10, "Consecutive unplayable clips tolerated before giving up.\n0 retries forever"},
	{key.PlaybackSeed, 0, "Seed for clip selection.\n0 picks a random seed on every run"},

	{key.DecoderQuality, 3, "MJPEG quality handed to ffmpeg (2 best, 31 worst)"},
	{key.DecoderScale, "", "Optional ffmpeg scale filter argument, e.g. 1920:-2"},

	{key.DisplayFullscreen, false, "Open the video window fullscreen"},
	{key.DisplayTitle, constant.App, "Window title prefix"},

	{key.TUIEnable, true, "Show the status screen when attached to a terminal"},
	{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)"},
	{key.CliColored, true, "Enable colored CLI output"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},
}

// Default indexes every setting by its key.
var Default = lo.SliceToMap(fields, func(f Field) (string, Field) {
	return f.Key, f
})

// EnvExposed holds the keys bound to environment variables, which is all of them.
var EnvExposed = lo.Map(fields, func(f Field, _ int) string {
	return f.Key
})

// Fields returns every setting in display order.
func Fields() []Field {
	return append([]Field(nil), fields...)
}

func init() {
	if dup := lo.FindDuplicates(EnvExposed); len(dup) > 0 {
		panic(fmt.Sprintf("duplicate config keys: %v", dup))
	}
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"current":  viper.Get,
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl":       highlight,
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (current .Key) }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ typename .Value }}`))
