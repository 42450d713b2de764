package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mbeissinger/vj-looper/key"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/mbeissinger/vj-looper/playback"
	"github.com/mbeissinger/vj-looper/player"
	"github.com/mbeissinger/vj-looper/tui"
	"github.com/mbeissinger/vj-looper/util"
	"github.com/spf13/viper"
)

// keyBuffer bounds key presses queued between two frames.
const keyBuffer = 16

// play wires the ffmpeg decoder, the mpv window and the terminal status screen into a session and runs it.
func play(ctx context.Context, conf playback.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := player.NewKeys(keyBuffer)
	session := &playback.Session{
		Config: conf,
		Opener: player.NewFFmpeg(viper.GetInt(key.DecoderQuality), viper.GetString(key.DecoderScale)),
		OpenDisplay: func(ctx context.Context) (playback.Display, error) {
			display, err := player.OpenMPV(ctx, player.DisplayOptions{
				Title:      viper.GetString(key.DisplayTitle),
				Fullscreen: viper.GetBool(key.DisplayFullscreen),
			}, keys)
			if err != nil {
				return nil, err
			}
			return display, nil
		},
		Keys:     keys,
		Observer: playback.LogObserver{},
	}

	if viper.GetBool(key.TUIEnable) && util.IsTerminal() {
		status := tui.NewStatus(keys)
		session.Observer = playback.Observers{playback.LogObserver{}, status}

		status.Start()
		defer func() {
			if err := status.Stop(); err != nil {
				log.Warnf("status screen: %v", err)
			}
		}()
	}

	return session.Run(ctx)
}
