package content

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes where words live in a spreadsheet. The default
// layout is one word per row: word, meaning, comma-separated synonyms,
// example sentence.
type ImportConfig struct {
	SheetName string
	SkipRows  int
}

// DefaultImportConfig returns the standard layout: first sheet, one
// header row.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName: "Sheet1",
		SkipRows:  1,
	}
}

// ImportWords reads a word list from an Excel file. Rows without a word
// or meaning are skipped.
func ImportWords(path string, cfg ImportConfig) ([]Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", cfg.SheetName, err)
	}

	var words []Word
	for i, row := range rows {
		if i < cfg.SkipRows {
			continue
		}
		word := cell(row, 0)
		meaning := cell(row, 1)
		if word == "" || meaning == "" {
			continue
		}
		w := Word{
			ID:      fmt.Sprintf("%d", len(words)+1),
			Word:    word,
			Meaning: meaning,
			Example: cell(row, 3),
		}
		if syns := cell(row, 2); syns != "" {
			for _, s := range strings.Split(syns, ",") {
				if s = strings.TrimSpace(s); s != "" {
					w.Synonyms = append(w.Synonyms, s)
				}
			}
		}
		words = append(words, w)
	}
	return words, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
