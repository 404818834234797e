package models

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
)

func newModelServer(t *testing.T, ids ...string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			http.NotFound(w, r)
			return
		}
		var data []string
		for _, id := range ids {
			data = append(data, fmt.Sprintf(`{"id":%q,"object":"model","owned_by":"openai"}`, id))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"object":"list","data":[%s]}`, strings.Join(data, ","))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .bopomofo.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestSpeechModels(t *testing.T) {
	server := newModelServer(t, "tts-1-hd", "gpt-4o", "gpt-4o-mini-tts", "tts-1", "gpt-4o-audio-preview", "dall-e-3")

	lister := NewLister("test-key", server.URL+"/v1")
	tts, audio, err := lister.SpeechModels(context.Background())
	if err != nil {
		t.Fatalf("SpeechModels() error = %v", err)
	}

	if want := []string{"gpt-4o-mini-tts", "tts-1", "tts-1-hd"}; !reflect.DeepEqual(tts, want) {
		t.Errorf("tts = %v, want %v", tts, want)
	}
	if want := []string{"gpt-4o-audio-preview"}; !reflect.DeepEqual(audio, want) {
		t.Errorf("audio = %v, want %v", audio, want)
	}
}

func TestListAvailableModels(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		contains []string
		excludes []string
	}{
		{
			name:     "tts models",
			ids:      []string{"tts-1", "gpt-4o"},
			contains: []string{"Text-to-Speech (TTS) Models:", "  tts-1\n"},
			excludes: []string{"gpt-4o", "Audio Models:"},
		},
		{
			name:     "no tts models",
			ids:      []string{"gpt-4o"},
			contains: []string{"No TTS models found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newModelServer(t, tt.ids...)
			var out bytes.Buffer

			if err := NewLister("test-key", server.URL+"/v1").ListAvailableModels(context.Background(), &out); err != nil {
				t.Fatalf("ListAvailableModels() error = %v", err)
			}

			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out.String(), s) {
					t.Errorf("output should not contain %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	var out bytes.Buffer
	if err := NewLister(apiKey, "").ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
