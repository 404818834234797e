package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/bopomofo/internal"
	"codeberg.org/snonux/bopomofo/internal/symbols"
)

// DefaultCategory names entries that appear before the first header
const DefaultCategory = "Symbols"

// ReadTableFile reads a custom symbol table from a file
// Supports formats:
// - Category header: "[Vowels]"
// - Key with descriptor: "ㄅ = ㄅㄛ"
// - Key only: "ㄚ" (the key is also the descriptor)
// - Comments: lines starting with "#"
func ReadTableFile(filename string) (symbols.Table, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	return ParseTable(string(content))
}

// ParseTable parses table file content
func ParseTable(content string) (symbols.Table, error) {
	var table symbols.Table
	seen := make(map[string]int)

	for i, line := range splitLines(content) {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated category header %q", lineNo, line)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, fmt.Errorf("line %d: empty category name", lineNo)
			}
			table = append(table, symbols.Category{Name: name})
			continue
		}

		key, source := line, line
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			key = strings.TrimSpace(parts[0])
			source = strings.TrimSpace(parts[1])
			if source == "" {
				source = key
			}
		}

		key = internal.NormalizeKey(key)
		if err := internal.ValidateKey(key); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("line %d: duplicate key %q (first on line %d)", lineNo, key, prev)
		}
		seen[key] = lineNo

		if len(table) == 0 {
			table = append(table, symbols.Category{Name: DefaultCategory})
		}
		last := &table[len(table)-1]
		last.Entries = append(last.Entries, symbols.Entry{Key: key, Source: source})
	}

	return table, nil
}

// splitLines splits a string by newlines
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
