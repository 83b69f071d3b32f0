package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/entities"
	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/domain/repositories"
)

const defaultSampleRate = 16000

// FFmpegConfig holds configuration for the ffmpeg decoder
// Optional fields with defaults:
// - BinDir: directory holding a bundled ffmpeg binary, preferred over everything else
// - Path: explicit ffmpeg binary (default: "ffmpeg" looked up on PATH)
// - SampleRate: output sample rate in Hz (default: 16000)
// - TempDir: where uploads are staged for ffmpeg (default: os.TempDir())
type FFmpegConfig struct {
	BinDir     string
	Path       string
	SampleRate int
	TempDir    string
}

// FFmpegDecoder decodes any container ffmpeg understands into mono PCM
type FFmpegDecoder struct {
	path       string
	sampleRate int
	tempDir    string
	logger     *zap.Logger
}

var _ repositories.AudioDecoder = (*FFmpegDecoder)(nil)

// NewFFmpegDecoder creates a decoder and logs which ffmpeg binary it will use
func NewFFmpegDecoder(config FFmpegConfig, logger *zap.Logger) *FFmpegDecoder {
	sampleRate := config.SampleRate
	if sampleRate == 0 {
		sampleRate = defaultSampleRate
	}

	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	path, bundled := ResolveFFmpegPath(config.BinDir, config.Path)
	if bundled {
		logger.Info("FFmpeg configured from bundled directory", zap.String("path", path))
	} else {
		logger.Warn("Bundled FFmpeg not found, falling back to system FFmpeg", zap.String("path", path))
	}

	return &FFmpegDecoder{
		path:       path,
		sampleRate: sampleRate,
		tempDir:    tempDir,
		logger:     logger,
	}
}

// ResolveFFmpegPath prefers ffmpeg inside binDir, then an explicit path, then PATH.
// The boolean reports whether the bundled binary was found.
func ResolveFFmpegPath(binDir, explicit string) (string, bool) {
	if binDir != "" {
		name := "ffmpeg"
		if runtime.GOOS == "windows" {
			name = "ffmpeg.exe"
		}
		candidate := filepath.Join(binDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	if explicit != "" {
		return explicit, false
	}
	if found, err := exec.LookPath("ffmpeg"); err == nil {
		return found, false
	}
	return "ffmpeg", false
}

// Decode implements repositories.AudioDecoder
func (d *FFmpegDecoder) Decode(ctx context.Context, data []byte, formatHint string) (entities.Audio, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrDecode)
	}

	ext := FormatFromHint(formatHint)

	// PCM WAV needs no transcoding
	if IsWAV(data) {
		pcm, err := DecodeWAV(data)
		if err == nil {
			return pcm, nil
		}
		d.logger.Debug("WAV fast path failed, using ffmpeg", zap.Error(err))
	}

	return d.transcode(ctx, data, ext)
}

func (d *FFmpegDecoder) transcode(ctx context.Context, data []byte, ext string) (entities.Audio, error) {
	input := filepath.Join(d.tempDir, fmt.Sprintf("%s%s.%s", uploadPrefix, uuid.NewString(), ext))
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: failed to stage upload: %v", domain.ErrDecode, err)
	}
	defer func() {
		if err := os.Remove(input); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("Failed to remove staged upload", zap.String("path", input), zap.Error(err))
		}
	}()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.path,
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-ac", "1", "-ar", strconv.Itoa(d.sampleRate),
		"-acodec", "pcm_s16le",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: ffmpeg not found at %q", domain.ErrDecode, domain.ErrDecoderUnavailable, d.path)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: ffmpeg: %s", domain.ErrDecode, msg)
	}

	pcm, err := DecodeWAV(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	d.logger.Debug("Decoded upload with ffmpeg",
		zap.String("format", ext),
		zap.Duration("duration", pcm.Duration()),
		zap.Int("sampleRate", pcm.SampleRate()))

	return pcm, nil
}

// FormatFromHint maps a file name or extension to the container ffmpeg should expect.
func FormatFromHint(hint string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(hint), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(hint, "."))
	}

	switch ext {
	case "wav", "ogg", "opus", "flac", "webm", "aac":
		return ext
	case "mp3", "mpeg":
		return "mp3"
	case "m4a", "mp4":
		return "m4a"
	default:
		return "bin"
	}
}
