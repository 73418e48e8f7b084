// Package grid implements the rectangular row/column representation
// used to move translations to and from the spreadsheet collaborator.
//
// Layout: row 0 is the header ["", lang_1, lang_2, ...] with language
// codes sorted lexicographically; every following row is
// [key, value_for_lang_1, value_for_lang_2, ...]. Each data row carries
// at least 1 + len(languages) cells, aligned by column index to the
// header. A cell may be the empty string but is never absent.
package grid

import (
	"fmt"
	"sort"

	"github.com/pblondin/stringify/translation"
)

// Grid is the rectangular cell matrix exchanged with the spreadsheet.
type Grid [][]string

// MalformedRowError reports a data row with fewer cells than the
// header's language columns require. It is surfaced rather than
// silently padded, so column misalignment never corrupts translations.
type MalformedRowError struct {
	// Row is the zero-based row index within the grid.
	Row int
	// Cells is the number of cells the row has.
	Cells int
	// Want is the minimum number of cells the header requires.
	Want int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d has %d cells, header requires at least %d", e.Row, e.Cells, e.Want)
}

// ---------------------------------------------------------------------------
// Store → Grid
// ---------------------------------------------------------------------------

// FromStore renders a translation store as a grid. Languages become
// columns in ascending lexicographic order; keys become rows in the
// store's insertion order. A missing translation renders as the empty
// string.
func FromStore(s *translation.Store) Grid {
	langs := s.Languages()
	sort.Strings(langs)

	header := make([]string, 0, len(langs)+1)
	header = append(header, "")
	header = append(header, langs...)

	g := Grid{header}
	for _, key := range s.Keys() {
		row := make([]string, 0, len(langs)+1)
		row = append(row, key)
		for _, lang := range langs {
			value, _, _ := s.Get(key, lang)
			row = append(row, value)
		}
		g = append(g, row)
	}
	return g
}

// ---------------------------------------------------------------------------
// Grid → Store
// ---------------------------------------------------------------------------

// ToStore rebuilds a translation store from a grid. The header row gives
// the language for each column; each data row contributes one key.
//
// A row with a blank key cell is skipped, unless the previous row's key
// cell was also blank, in which case the scan ends. Spreadsheets edited
// by hand routinely contain a stray blank row, so a single one is
// tolerated; two in a row mean end of data. This termination rule
// matches the sheets already in circulation and must not change.
//
// The language list ends at the first blank header cell; any columns
// after it are ignored, both in the header and in the data rows. A data
// row with fewer cells than the language columns need yields a
// MalformedRowError.
func ToStore(g Grid) (*translation.Store, error) {
	s := translation.NewStore()
	if len(g) == 0 {
		return s, nil
	}

	// The language list ends at the first blank header cell; columns
	// after it are scratch space and never read.
	var langs []string
	if len(g[0]) > 1 {
		for _, lang := range g[0][1:] {
			if lang == "" {
				break
			}
			langs = append(langs, lang)
		}
	}
	for _, lang := range langs {
		s.AddLanguage(lang)
	}

	prevBlank := false
	for i, row := range g[1:] {
		key := ""
		if len(row) > 0 {
			key = row[0]
		}
		if key == "" {
			if prevBlank {
				break
			}
			prevBlank = true
			continue
		}
		prevBlank = false

		if len(row) < 1+len(langs) {
			return nil, &MalformedRowError{Row: i + 1, Cells: len(row), Want: 1 + len(langs)}
		}
		for col, lang := range langs {
			s.Add(key, lang, row[col+1])
		}
	}
	return s, nil
}
