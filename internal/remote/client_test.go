package remote

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/bopomofo/internal/pipeline"
	"codeberg.org/snonux/bopomofo/internal/symbols"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.BaseURL != "https://audreyt.github.io/gcin-voice-data/mp3" {
		t.Errorf("BaseURL = %s", opts.BaseURL)
	}
	if opts.FileName != "3.mp3" {
		t.Errorf("FileName = %s, want 3.mp3", opts.FileName)
	}
	if opts.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", opts.Timeout)
	}
}

func TestURL(t *testing.T) {
	client := NewClient(nil)

	tests := []struct {
		descriptor string
		want       string
	}{
		{"ㄅㄛ", DefaultBaseURL + "/%E3%84%85%E3%84%9B/3.mp3"},
		{"ㄈㄛ2", DefaultBaseURL + "/%E3%84%88%E3%84%9B2/3.mp3"},
		{"a b", DefaultBaseURL + "/a%20b/3.mp3"},
		{"x/y", DefaultBaseURL + "/x%2Fy/3.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			if got := client.URL(tt.descriptor); got != tt.want {
				t.Errorf("URL(%q) = %s, want %s", tt.descriptor, got, tt.want)
			}
		})
	}

	trimmed := NewClient(&Options{BaseURL: "http://mirror.local/mp3/"})
	if got := trimmed.URL("ㄚ"); got != "http://mirror.local/mp3/%E3%84%9A/3.mp3" {
		t.Errorf("trailing slash not trimmed: %s", got)
	}
}

func TestFetch(t *testing.T) {
	clip := bytes.Repeat([]byte{0xFF}, 5000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mp3/ㄅㄛ/3.mp3":
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write(clip)
		case "/mp3/big/3.mp3":
			w.Write(bytes.Repeat([]byte{0x01}, 2048))
		case "/mp3/broken/3.mp3":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(&Options{BaseURL: server.URL + "/mp3", MaxSizeBytes: 1024 * 1024})
	ctx := context.Background()

	data, err := client.Fetch(ctx, "ㄅㄛ")
	if err != nil {
		t.Fatalf("Fetch(ㄅㄛ) error = %v", err)
	}
	if !bytes.Equal(data, clip) {
		t.Errorf("Fetch(ㄅㄛ) returned %d bytes, want %d", len(data), len(clip))
	}

	_, err = client.Fetch(ctx, "ㄦ2")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Fetch(ㄦ2) error = %v, want 404 StatusError", err)
	}

	_, err = client.Fetch(ctx, "broken")
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Fetch(broken) error = %v, want 500 StatusError", err)
	}

	if _, err := client.Fetch(ctx, "  "); err == nil {
		t.Error("Fetch with empty descriptor expected error")
	}

	small := NewClient(&Options{BaseURL: server.URL + "/mp3", MaxSizeBytes: 1024})
	_, err = small.Fetch(ctx, "big")
	if err == nil || !strings.Contains(err.Error(), "maximum size") {
		t.Errorf("Fetch(big) error = %v, want size limit error", err)
	}
}

func TestFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := NewClient(&Options{BaseURL: base, Timeout: time.Second})
	if _, err := client.Fetch(context.Background(), "ㄆㄛ2"); err == nil {
		t.Error("expected connection error")
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
			w.Write(bytes.Repeat([]byte{0x49}, 2000))
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewClient(&Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	if _, err := client.Fetch(context.Background(), "ㄅㄛ"); err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Fetch() took %v, timeout not applied", elapsed)
	}

	// A timed out entry fails in the pipeline and leaves nothing behind
	outputDir := t.TempDir()
	pl, err := pipeline.New(client, &pipeline.Options{
		OutputDir: outputDir,
		MinSize:   pipeline.DownloadMinSize,
		Out:       &bytes.Buffer{},
		Logger:    zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}

	report := pl.Run(context.Background(), []symbols.Entry{{Key: "ㄅ", Source: "ㄅㄛ"}})
	if report.Failed != 1 || report.Succeeded != 0 {
		t.Fatalf("report = %+v, want one failure", report)
	}

	var fetchErr *pipeline.FetchError
	if !errors.As(report.Items[0].Err, &fetchErr) {
		t.Errorf("Err = %v, want FetchError", report.Items[0].Err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty: %v", entries)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "ㄅ.mp3")); !os.IsNotExist(err) {
		t.Errorf("ㄅ.mp3 should not exist, stat err = %v", err)
	}
}

func TestName(t *testing.T) {
	if NewClient(nil).Name() != "gcin" {
		t.Error("Name() should be gcin")
	}
}
