package voice

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           samples,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestInspectWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.wav")
	writeWAV(t, path, make([]int, 8000))

	info, err := InspectWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.Equal(t, 8000, info.Samples)
	assert.Equal(t, 500*time.Millisecond, info.Duration())
}

func TestInspectWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entrada.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wav file"), 0644))

	_, err := InspectWAV(path)
	assert.Error(t, err)
}

func TestInspectWAVMissingFile(t *testing.T) {
	_, err := InspectWAV(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestFFmpegMissingBinary(t *testing.T) {
	dir := t.TempDir()
	f := NewFFmpeg(filepath.Join(dir, "no-such-ffmpeg"))

	err := f.Transcode(context.Background(), filepath.Join(dir, "in.webm"), filepath.Join(dir, "out.wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcode: ffmpeg")
}

func TestFFmpegTranscodesWAV(t *testing.T) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	samples := make([]int, 16000)
	for i := range samples {
		samples[i] = (i % 200) * 100
	}
	writeWAV(t, src, samples)

	dst := filepath.Join(dir, "out.wav")
	require.NoError(t, NewFFmpeg(bin).Transcode(context.Background(), src, dst))

	info, err := InspectWAV(dst)
	require.NoError(t, err)
	assert.Equal(t, 16000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
}
