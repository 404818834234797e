package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey returns the NFC form of an artifact key, so precomposed and
// decomposed spellings of the same symbol map to one file name.
func NormalizeKey(key string) string {
	return norm.NFC.String(strings.TrimSpace(key))
}

// ValidateKey checks that key can be used as a file base name inside the
// output directory.
func ValidateKey(key string) error {
	switch key {
	case "":
		return fmt.Errorf("key cannot be empty")
	case ".", "..":
		return fmt.Errorf("invalid key %q", key)
	}
	if strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return fmt.Errorf("key %q must not contain path separators", key)
	}
	return nil
}

// GenerateNoteGUID creates a stable identifier for a symbol.
// Format: bpmf_md5(symbol)[:10]
func GenerateNoteGUID(symbol string) string {
	hash := md5.Sum([]byte(symbol))
	return "bpmf_" + hex.EncodeToString(hash[:])[:10]
}
