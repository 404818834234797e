package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/bopomofo/internal/symbols"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        symbols.Table
		wantErr     string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace and comments",
			fileContent: "   \n\t\r\n# nothing here\n   ",
			want:        nil,
		},
		{
			name: "categories with descriptors",
			fileContent: `[Consonants]
ㄅ = ㄅㄛ
ㄆ = ㄆㄛ

[Tones]
tone2 = ㄈㄛ2`,
			want: symbols.Table{
				{Name: "Consonants", Entries: []symbols.Entry{
					{Key: "ㄅ", Source: "ㄅㄛ"},
					{Key: "ㄆ", Source: "ㄆㄛ"},
				}},
				{Name: "Tones", Entries: []symbols.Entry{
					{Key: "tone2", Source: "ㄈㄛ2"},
				}},
			},
		},
		{
			name:        "key only before any header",
			fileContent: "ㄚ\nㄛ = \n",
			want: symbols.Table{
				{Name: DefaultCategory, Entries: []symbols.Entry{
					{Key: "ㄚ", Source: "ㄚ"},
					{Key: "ㄛ", Source: "ㄛ"},
				}},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "[Vowels]\r\nㄚ\r\nㄛ = ㄛ\r\n",
			want: symbols.Table{
				{Name: "Vowels", Entries: []symbols.Entry{
					{Key: "ㄚ", Source: "ㄚ"},
					{Key: "ㄛ", Source: "ㄛ"},
				}},
			},
		},
		{
			name:        "multiple equals signs",
			fileContent: `tone1 = 媽 = mother`,
			want: symbols.Table{
				{Name: DefaultCategory, Entries: []symbols.Entry{
					{Key: "tone1", Source: "媽 = mother"},
				}},
			},
		},
		{
			name:        "empty header keeps category",
			fileContent: "[Empty]\n[Vowels]\nㄚ",
			want: symbols.Table{
				{Name: "Empty"},
				{Name: "Vowels", Entries: []symbols.Entry{{Key: "ㄚ", Source: "ㄚ"}}},
			},
		},
		{
			name:        "path separator in key",
			fileContent: "a/b = x",
			wantErr:     "line 1",
		},
		{
			name:        "duplicate key",
			fileContent: "ㄅ = ㄅㄛ\n\nㄅ = ㄅ",
			wantErr:     "duplicate key",
		},
		{
			name:        "unterminated header",
			fileContent: "[Vowels",
			wantErr:     "unterminated",
		},
		{
			name:        "empty header name",
			fileContent: "[ ]",
			wantErr:     "empty category name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTable(tt.fileContent)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseTable() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTable() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadTableFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "table.txt")
	if err := os.WriteFile(tmpFile, []byte("[Tones]\ntone1 = 媽\ntone3 = 馬\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	table, err := ReadTableFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadTableFile() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if entry, category, ok := table.Lookup("tone3"); !ok || entry.Source != "馬" || category != "Tones" {
		t.Errorf("Lookup(tone3) = %v, %v, %v", entry, category, ok)
	}
}

func TestReadTableFile_FileNotFound(t *testing.T) {
	_, err := ReadTableFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"unix line endings", "line1\nline2\nline3", []string{"line1", "line2", "line3"}},
		{"windows line endings", "line1\r\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		{"mixed line endings", "line1\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		{"empty string", "", nil},
		{"single line no ending", "single line", []string{"single line"}},
		{"trailing newline", "line1\nline2\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines() = %v, want %v", got, tt.want)
			}
		})
	}
}
