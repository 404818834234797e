package audio

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// MaxTextLength is the longest text accepted in a single request, in runes
const MaxTextLength = 100

// ValidateText checks that text can be spoken in the given language.
// Chinese language tags need at least one Han or Bopomofo character.
func ValidateText(text, lang string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("text has %d characters, maximum is %d", n, MaxTextLength)
	}

	if !isChineseLanguage(lang) {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("language tag cannot be empty")
		}
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("invalid language tag %q: %w", lang, err)
		}
		return nil
	}

	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Bopomofo) {
			return nil
		}
	}

	return fmt.Errorf("text %q has no Han or Bopomofo characters for language %s", text, lang)
}

// isChineseLanguage reports whether lang names a Chinese language
func isChineseLanguage(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}

	base, _ := tag.Base()
	switch base.String() {
	case "zh", "cmn", "yue", "nan", "hak":
		return true
	}
	return false
}
