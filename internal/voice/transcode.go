package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// ErrEmptyAudio means the transcoded file decoded to zero samples.
var ErrEmptyAudio = errors.New("transcode: audio has no samples")

// Transcoder converts an uploaded clip into linear PCM WAV.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// FFmpeg transcodes with an ffmpeg binary into mono 16-bit PCM.
type FFmpeg struct {
	Path       string
	SampleRate int
}

func NewFFmpeg(path string) *FFmpeg {
	return &FFmpeg{Path: path, SampleRate: 16000}
}

func (f *FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, f.Path,
		"-y", "-loglevel", "error",
		"-i", src,
		"-ac", "1",
		"-ar", strconv.Itoa(f.SampleRate),
		"-acodec", "pcm_s16le",
		dst,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("transcode: ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("transcode: ffmpeg: %w", err)
	}

	_, err := InspectWAV(dst)
	return err
}

// WAVInfo describes a decoded PCM file.
type WAVInfo struct {
	SampleRate int
	Channels   int
	Samples    int
}

func (w WAVInfo) Duration() time.Duration {
	if w.SampleRate == 0 || w.Channels == 0 {
		return 0
	}
	frames := w.Samples / w.Channels
	return time.Duration(frames) * time.Second / time.Duration(w.SampleRate)
}

// InspectWAV decodes the file at path and fails if it is not a PCM WAV or
// holds no samples.
func InspectWAV(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, fmt.Errorf("transcode: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return WAVInfo{}, fmt.Errorf("transcode: decode %s: %w", path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return WAVInfo{}, ErrEmptyAudio
	}

	info := WAVInfo{Samples: len(buf.Data)}
	if buf.Format != nil {
		info.SampleRate = buf.Format.SampleRate
		info.Channels = buf.Format.NumChannels
	}
	return info, nil
}
