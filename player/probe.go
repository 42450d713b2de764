package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mbeissinger/vj-looper/constant"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Probe describes the first video stream of a clip as reported by ffprobe.
type Probe struct {
	Codec  string
	Width  int
	Height int
	// FPS is absent when the container reports no usable rate.
	FPS mo.Option[float64]
}

type probeOutput struct {
	Streams []struct {
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// ProbeClip runs ffprobe on path. It fails when the file cannot be parsed or has no video stream.
func ProbeClip(ctx context.Context, binary, path string) (Probe, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,r_frame_rate,avg_frame_rate",
		"-of", "json",
		"--", path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Probe{}, fmt.Errorf("%s: %s", constant.FFprobe, lastLine(msg))
		}
		return Probe{}, fmt.Errorf("%s: %w", constant.FFprobe, err)
	}

	return parseProbe(stdout.Bytes())
}

func parseProbe(data []byte) (Probe, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Probe{}, fmt.Errorf("decode %s output: %w", constant.FFprobe, err)
	}

	stream, ok := lo.First(out.Streams)
	if !ok {
		return Probe{}, fmt.Errorf("no video stream")
	}

	fps := ParseRate(stream.AvgFrameRate)
	if fps.IsAbsent() {
		fps = ParseRate(stream.RFrameRate)
	}

	return Probe{
		Codec:  stream.CodecName,
		Width:  stream.Width,
		Height: stream.Height,
		FPS:    fps,
	}, nil
}

// ParseRate parses an ffprobe rational such as "30000/1001" or a plain number.
// Zero, negative and malformed rates are absent.
func ParseRate(rate string) mo.Option[float64] {
	rate = strings.TrimSpace(rate)
	num, den, isFraction := strings.Cut(rate, "/")

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return mo.None[float64]()
	}

	d := 1.0
	if isFraction {
		if d, err = strconv.ParseFloat(den, 64); err != nil || d == 0 {
			return mo.None[float64]()
		}
	}

	if fps := n / d; fps > 0 {
		return mo.Some(fps)
	}
	return mo.None[float64]()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
