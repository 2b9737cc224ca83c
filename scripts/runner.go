package scripts

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Executor runs an external command and returns its stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

type Runner struct {
	logger *logrus.Logger
}

func NewRunner(logger *logrus.Logger) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{logger: logger}
}

func (r *Runner) Execute(ctx context.Context, name string, args ...string) (string, error) {
	const op = "Runner.Execute"

	r.logger.WithFields(logrus.Fields{
		"command": name,
		"args":    args,
	}).Debug("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrOutput := strings.TrimSpace(stderr.String())
		r.logger.WithError(err).WithFields(logrus.Fields{
			"command": name,
			"stderr":  stderrOutput,
		}).Error("Command execution failed")
		return "", newScriptError(op, err, name+" failed", stderrOutput)
	}

	return stdout.String(), nil
}

// FFmpeg converts media files with an ffmpeg binary.
type FFmpeg struct {
	path string
	exec Executor
}

func NewFFmpeg(path string, exec Executor) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{path: path, exec: exec}
}

// ToLinearPCMChunks writes src into dir as consecutive 16 kHz mono signed
// 16-bit little-endian WAV files of at most chunk length each, and returns
// their paths in playback order.
func (f *FFmpeg) ToLinearPCMChunks(ctx context.Context, src, dir string, chunk time.Duration) ([]string, error) {
	const op = "FFmpeg.ToLinearPCMChunks"

	seconds := int(chunk / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	args := []string{
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-f", "segment",
		"-segment_time", strconv.Itoa(seconds),
		"-reset_timestamps", "1",
		"-y",
		filepath.Join(dir, "chunk-%04d.wav"),
	}
	if _, err := f.exec.Execute(ctx, f.path, args...); err != nil {
		return nil, err
	}

	chunks, err := filepath.Glob(filepath.Join(dir, "chunk-*.wav"))
	if err != nil {
		return nil, newScriptError(op, err, "list audio chunks", "")
	}
	if len(chunks) == 0 {
		return nil, newScriptError(op, nil, "ffmpeg produced no audio", "")
	}
	sort.Strings(chunks)
	return chunks, nil
}
