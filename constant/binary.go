package constant

// External programs driven as subprocesses.
const (
	FFmpeg  = "ffmpeg"
	FFprobe = "ffprobe"
	MPV     = "mpv"
)
