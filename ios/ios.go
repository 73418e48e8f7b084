// Package ios implements the iOS .strings resource format: line-oriented
// parsing and writing of Localizable.strings files, and the {lang}.lproj
// directory convention that carries the language code.
//
// Format: one "KEY" = "VALUE"; pair per line. Anything that does not
// match the pattern (comments, blank lines) is skipped without error.
package ios

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pblondin/stringify/resource"
)

// DefaultFileName is the conventional iOS resource file name.
const DefaultFileName = "Localizable.strings"

// ---------------------------------------------------------------------------
// Language detection
// ---------------------------------------------------------------------------

// LanguageFromPath derives the language code from a resource file path:
// the final two characters of the .lproj directory's base name.
// "fr.lproj" yields "fr"; longer names are truncated the same way, so
// "zh-Hans.lproj" yields "ns". The existing spreadsheets were built
// against that truncation, so it stays. Paths without a .lproj segment
// return ErrLanguageNotDetected.
func LanguageFromPath(path string) (string, error) {
	norm := strings.ReplaceAll(path, "\\", "/")
	for _, seg := range strings.Split(norm, "/") {
		if !strings.HasSuffix(seg, ".lproj") {
			continue
		}
		base := strings.TrimSuffix(seg, ".lproj")
		if len(base) > 2 {
			base = base[len(base)-2:]
		}
		return base, nil
	}
	return "", fmt.Errorf("%s: %w", path, resource.ErrLanguageNotDetected)
}

// DirName returns the .lproj directory for a language.
func DirName(lang string) string {
	return lang + ".lproj"
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// reEntry matches one localized string definition: quoted key, equals
// sign, quoted value, terminating semicolon, with arbitrary surrounding
// whitespace.
var reEntry = regexp.MustCompile(`^\s*"(.*)"\s*=\s*"(.*)"\s*;`)

// Parse extracts ordered (key, value) entries from .strings data.
// Lines that do not match the entry pattern are silently skipped.
func Parse(data []byte) ([]resource.Entry, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var entries []resource.Entry
	for _, line := range strings.Split(text, "\n") {
		m := reEntry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, resource.Entry{Key: m[1], Value: m[2]})
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal produces .strings file content with one definition line per
// entry. Entries with an empty key are skipped, mirroring the Android
// writer's handling of blank grid rows.
func Marshal(entries []resource.Entry) []byte {
	var b strings.Builder
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("\"%s\" = \"%s\";\n", e.Key, e.Value))
	}
	return []byte(b.String())
}
