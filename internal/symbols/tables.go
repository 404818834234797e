package symbols

const (
	Consonants = "Consonants"
	Vowels     = "Vowels"
	Tones      = "Tones"
)

// GCINTable returns the entries for the GCIN voice data mirror. Each source
// is a folder name; an unmarked folder holds tone 1, a numeric suffix selects
// tones 2-4.
func GCINTable() Table {
	return Table{
		{Name: Consonants, Entries: []Entry{
			{"ㄅ", "ㄅㄛ"},
			{"ㄆ", "ㄆㄛ"},
			{"ㄇ", "ㄇㄛ"},
			{"ㄈ", "ㄈㄛ2"},
			{"ㄉ", "ㄉㄜ2"},
			{"ㄊ", "ㄊㄜ4"},
			{"ㄋ", "ㄋㄜ4"},
			{"ㄌ", "ㄌㄜ4"},
			{"ㄍ", "ㄍㄜ"},
			{"ㄎ", "ㄎㄜ4"},
			{"ㄏ", "ㄏㄜ4"},
			{"ㄐ", "ㄐㄧ"},
			{"ㄑ", "ㄑㄧ"},
			{"ㄒ", "ㄒㄧ"},
			{"ㄓ", "ㄓ"},
			{"ㄔ", "ㄔ"},
			{"ㄕ", "ㄕ"},
			{"ㄖ", "ㄖ4"},
			{"ㄗ", "ㄗ"},
			{"ㄘ", "ㄘ"},
			{"ㄙ", "ㄙ"},
		}},
		{Name: Vowels, Entries: []Entry{
			{"ㄚ", "ㄚ"},
			{"ㄛ", "ㄛ"},
			{"ㄜ", "ㄜ4"},
			{"ㄝ", "ㄧㄝ"},
			{"ㄞ", "ㄞ"},
			{"ㄟ", "ㄟ"},
			{"ㄠ", "ㄠ"},
			{"ㄡ", "ㄡ3"},
			{"ㄢ", "ㄢ"},
			{"ㄣ", "ㄣ"},
			{"ㄤ", "ㄤ"},
			{"ㄥ", "ㄥ"},
			{"ㄦ", "ㄦ2"}, // not every mirror carries this folder
			{"ㄧ", "ㄧ"},
			{"ㄨ", "ㄨ"},
			{"ㄩ", "ㄩ"},
		}},
		{Name: Tones, Entries: []Entry{
			{"tone1", "ㄇㄚ"},
			{"tone2", "ㄇㄚ2"},
			{"tone3", "ㄇㄚ3"},
			{"tone4", "ㄇㄚ4"},
			{"tone5", "ㄇㄚ"}, // neutral tone has no recording, reuse tone 1
		}},
	}
}

// SpeechTable returns the entries fed to a text-to-speech provider.
// Consonants carry their teaching vowel; tones use the 媽麻馬罵嗎 series.
func SpeechTable() Table {
	return Table{
		{Name: Consonants, Entries: []Entry{
			{"ㄅ", "ㄅㄛ"},
			{"ㄆ", "ㄆㄛ"},
			{"ㄇ", "ㄇㄛ"},
			{"ㄈ", "ㄈㄛ"},
			{"ㄉ", "ㄉㄜ"},
			{"ㄊ", "ㄊㄜ"},
			{"ㄋ", "ㄋㄜ"},
			{"ㄌ", "ㄌㄜ"},
			{"ㄍ", "ㄍㄜ"},
			{"ㄎ", "ㄎㄜ"},
			{"ㄏ", "ㄏㄜ"},
			{"ㄐ", "ㄐㄧ"},
			{"ㄑ", "ㄑㄧ"},
			{"ㄒ", "ㄒㄧ"},
			{"ㄓ", "ㄓ"},
			{"ㄔ", "ㄔ"},
			{"ㄕ", "ㄕ"},
			{"ㄖ", "ㄖ"},
			{"ㄗ", "ㄗ"},
			{"ㄘ", "ㄘ"},
			{"ㄙ", "ㄙ"},
		}},
		{Name: Vowels, Entries: []Entry{
			{"ㄚ", "ㄚ"},
			{"ㄛ", "ㄛ"},
			{"ㄜ", "ㄜ"},
			{"ㄝ", "ㄧㄝ"},
			{"ㄞ", "ㄞ"},
			{"ㄟ", "ㄟ"},
			{"ㄠ", "ㄠ"},
			{"ㄡ", "ㄡ"},
			{"ㄢ", "ㄢ"},
			{"ㄣ", "ㄣ"},
			{"ㄤ", "ㄤ"},
			{"ㄥ", "ㄥ"},
			{"ㄦ", "ㄦ"},
			{"ㄧ", "ㄧ"},
			{"ㄨ", "ㄨ"},
			{"ㄩ", "ㄩ"},
		}},
		{Name: Tones, Entries: []Entry{
			{"tone1", "媽"},
			{"tone2", "麻"},
			{"tone3", "馬"},
			{"tone4", "罵"},
			{"tone5", "嗎"},
		}},
	}
}
