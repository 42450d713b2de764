package constant

// Key codes recognised by the playback input handler.
// They match what a terminal in raw mode emits for the corresponding keys.
const (
	KeyCtrlC  = 3
	KeyLF     = '\n'
	KeyCR     = '\r'
	KeyEscape = 27
)

// Script messages sent by the mpv window through its input bindings.
const (
	MessageQuit = App + "-quit"
	MessageNext = App + "-next"
)
