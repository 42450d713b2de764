// Package player drives the external programs clips are decoded and shown with.
//
// Decoding runs an ffmpeg subprocess that re-encodes a clip into a stream of JPEG frames on its stdout.
// Display runs a single mpv window for the whole session, fed those frames on its stdin and
// controlled through its JSON-IPC socket. Both sides satisfy the interfaces of the playback package.
package player

import (
	"os/exec"

	"github.com/samber/mo"
)

// Lookup resolves an external program on PATH.
func Lookup(name string) mo.Option[string] {
	path, err := exec.LookPath(name)
	if err != nil {
		return mo.None[string]()
	}
	return mo.Some(path)
}
