package audio

import (
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func TestNewESpeakProviderMissingBinary(t *testing.T) {
	config := DefaultProviderConfig()
	config.ESpeakBinary = "espeak-ng-does-not-exist"

	_, err := NewESpeakProvider(config)
	if err == nil {
		t.Fatal("Expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not installed") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewESpeakProviderFormat(t *testing.T) {
	config := DefaultProviderConfig()
	config.OutputFormat = "flac"

	_, err := NewESpeakProvider(config)
	if err == nil || !strings.Contains(err.Error(), "unsupported espeak-ng output format") {
		t.Errorf("NewESpeakProvider() error = %v, want format error", err)
	}
}

func TestESpeakProviderArgs(t *testing.T) {
	tests := []struct {
		name  string
		speed int
		pitch int
		want  []string
	}{
		{"defaults", 120, 50, []string{"-v", "cmn", "-s", "120", "-p", "50", "--stdout", "媽"}},
		{"clamped low", 10, -5, []string{"-v", "cmn", "-s", "80", "-p", "0", "--stdout", "媽"}},
		{"clamped high", 900, 150, []string{"-v", "cmn", "-s", "450", "-p", "99", "--stdout", "媽"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultProviderConfig()
			config.ESpeakSpeed = tt.speed
			config.ESpeakPitch = tt.pitch
			provider := &ESpeakProvider{binary: "espeak-ng", config: config}

			if got := provider.args("媽"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestESpeakProviderExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "mp3"},
		{"mp3", "mp3"},
		{"WAV", "wav"},
	}

	for _, tt := range tests {
		provider := &ESpeakProvider{config: &Config{OutputFormat: tt.format}}
		if got := provider.Extension(); got != tt.want {
			t.Errorf("Extension() with format %q = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestESpeakProviderFetch(t *testing.T) {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		t.Skip("espeak-ng not installed")
	}

	config := DefaultProviderConfig()
	config.OutputFormat = "wav"

	provider, err := NewESpeakProvider(config)
	if err != nil {
		t.Fatalf("NewESpeakProvider() error = %v", err)
	}

	data, err := provider.Fetch(t.Context(), "媽")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(data) < 44 || string(data[:4]) != "RIFF" {
		t.Errorf("Fetch() did not return WAV data (%d bytes)", len(data))
	}
}
