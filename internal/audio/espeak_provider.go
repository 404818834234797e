package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ESpeakProvider implements Provider interface for espeak-ng
type ESpeakProvider struct {
	binary string
	config *Config
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (Provider, error) {
	binary := config.ESpeakBinary
	if binary == "" {
		binary = "espeak-ng"
	}

	format := strings.ToLower(config.OutputFormat)
	if format != "" && format != "mp3" && format != "wav" {
		return nil, fmt.Errorf("unsupported espeak-ng output format: %s", config.OutputFormat)
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%s is not installed or not in PATH: %w", binary, err)
	}

	return &ESpeakProvider{
		binary: path,
		config: config,
	}, nil
}

// Fetch synthesizes text with espeak-ng and converts it to mp3 if configured
func (p *ESpeakProvider) Fetch(ctx context.Context, text string) ([]byte, error) {
	if err := ValidateText(text, p.config.Language); err != nil {
		return nil, err
	}

	wav, err := p.synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	if p.Extension() == "wav" {
		return wav, nil
	}
	return convertWAVToMP3(ctx, wav)
}

func (p *ESpeakProvider) synthesize(ctx context.Context, text string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.binary, p.args(text)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("no audio data received from espeak-ng")
	}

	return stdout.Bytes(), nil
}

// args builds the espeak-ng command line, writing WAV to stdout
func (p *ESpeakProvider) args(text string) []string {
	return []string{
		"-v", p.config.ESpeakVoice,
		"-s", fmt.Sprintf("%d", clamp(p.config.ESpeakSpeed, 80, 450)),
		"-p", fmt.Sprintf("%d", clamp(p.config.ESpeakPitch, 0, 99)),
		"--stdout",
		text,
	}
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if err := exec.Command(p.binary, "--version").Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// Extension returns the configured output format
func (p *ESpeakProvider) Extension() string {
	if strings.EqualFold(p.config.OutputFormat, "wav") {
		return "wav"
	}
	return "mp3"
}

// convertWAVToMP3 pipes WAV data through ffmpeg
func convertWAVToMP3(ctx context.Context, wav []byte) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-loglevel", "error",
		"-f", "wav", "-i", "pipe:0", "-acodec", "libmp3lame", "-f", "mp3", "pipe:1")

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(wav)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
