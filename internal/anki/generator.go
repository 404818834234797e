package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/bopomofo/internal"
	"codeberg.org/snonux/bopomofo/internal/symbols"
)

// Card represents a single Bopomofo flashcard
type Card struct {
	Symbol    string // The Bopomofo symbol or tone key
	Category  string // Table category, used as tag
	Source    string // Descriptor the clip was fetched from
	AudioFile string // Path to the pronunciation clip
}

// Generator collects cards from a populated output directory
type Generator struct {
	cards []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator() *Generator {
	return &Generator{
		cards: make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// Cards returns all collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// AddTable adds a card for every entry of table whose clip exists in
// audioDir. Keys without a usable clip are returned.
func (g *Generator) AddTable(table symbols.Table, audioDir, ext string) []string {
	var missing []string
	for _, category := range table {
		for _, entry := range category.Entries {
			key := internal.NormalizeKey(entry.Key)
			audioFile := filepath.Join(audioDir, key+"."+ext)

			info, err := os.Stat(audioFile)
			if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
				missing = append(missing, entry.Key)
				continue
			}

			g.AddCard(Card{
				Symbol:    key,
				Category:  category.Name,
				Source:    entry.Source,
				AudioFile: audioFile,
			})
		}
	}
	return missing
}

// GenerateCSV creates a CSV file for Anki import. The audio files have to
// be copied into Anki's collection.media folder by hand.
func (g *Generator) GenerateCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Symbol", "Audio", "Category", "Source"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, card := range g.cards {
		audioField := ""
		if card.AudioFile != "" {
			audioField = formatAudioField(filepath.Base(card.AudioFile))
		}

		record := []string{
			card.Symbol,
			audioField,
			card.Category,
			card.Source,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}
	return apkgGen.GenerateAPKG(outputPath)
}

// formatAudioField formats the audio file reference for Anki
func formatAudioField(filename string) string {
	if filename == "" {
		return ""
	}
	// Anki audio format: [sound:filename.mp3]
	return fmt.Sprintf("[sound:%s]", filename)
}
