// Package langmeta resolves resource language codes to human-readable
// names for status and log output.
package langmeta

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Name returns the English display name for a language code, or the
// code itself when it cannot be parsed.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// Native returns the language's name in that language itself, or the
// code when it cannot be parsed.
func Native(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
