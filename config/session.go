package config

import (
	"fmt"
	"time"

	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/playback"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Session snapshots the playback settings for a session playing clips from root.
// The snapshot does not follow later changes to the configuration.
func Session(root string) (playback.Config, error) {
	seconds := viper.GetFloat64(key.PlaybackDuration)
	if seconds <= 0 {
		return playback.Config{}, fmt.Errorf("%s must be positive, got %v", key.PlaybackDuration, seconds)
	}

	formats := lo.Compact(viper.GetStringSlice(key.PlaybackFormats))
	if len(formats) == 0 {
		return playback.Config{}, fmt.Errorf("%s must list at least one suffix", key.PlaybackFormats)
	}

	maxFailures := viper.GetInt(key.PlaybackMaxFailures)
	if maxFailures < 0 {
		return playback.Config{}, fmt.Errorf("%s must not be negative, got %d", key.PlaybackMaxFailures, maxFailures)
	}

	return playback.Config{
		Root:        root,
		Formats:     formats,
		Filter:      viper.GetString(key.PlaybackFilter),
		Duration:    time.Duration(seconds * float64(time.Second)),
		FallbackFPS: viper.GetFloat64(key.PlaybackFallbackFPS),
		PollTimeout: time.Duration(max(viper.GetInt(key.PlaybackPollTimeout), 0)) * time.Millisecond,
		MaxFailures: maxFailures,
		Seed:        viper.GetUint64(key.PlaybackSeed),
	}, nil
}
