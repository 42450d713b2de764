// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Scheduling - these keys control how clips are selected, looped and paced.
const (
	PlaybackDuration    = "playback.duration"
	PlaybackFormats     = "playback.formats"
	PlaybackFilter      = "playback.filter"
	PlaybackFallbackFPS = "playback.fallback_fps"
	PlaybackPollTimeout = "playback.poll_timeout_ms"
	PlaybackMaxFailures = "playback.max_failures"
	PlaybackSeed        = "playback.seed"
)

// Decoding - these keys are passed through to the ffmpeg frame pipe.
const (
	DecoderQuality = "decoder.quality"
	DecoderScale   = "decoder.scale"
)

// Display Surface - these keys configure the mpv output window.
const (
	DisplayFullscreen = "display.fullscreen"
	DisplayTitle      = "display.title"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys govern the status line shown while playing.
const (
	TUIEnable = "tui.enable"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-playback application behavior.
const (
	CliColored = "cli.colored"
)
