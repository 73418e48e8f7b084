// Package resource holds the pieces shared by every resource file
// format: the parsed entry shape and the language-detection sentinel.
package resource

import "errors"

// ErrLanguageNotDetected is returned by the per-platform language codecs
// when a file path does not follow the platform's naming convention
// (no values directory for Android, no .lproj directory for iOS).
// Callers skip such files; the error never aborts a whole run.
var ErrLanguageNotDetected = errors.New("language not detected from path")

// Entry is a single localized string extracted from (or written to) a
// resource file: one key and its text for one language.
type Entry struct {
	Key   string
	Value string
}
