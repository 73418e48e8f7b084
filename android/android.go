// Package android implements the Android string resource format:
// parsing and writing of strings.xml files, and the values-XX directory
// naming convention that carries the language code.
//
// Only flat <string name="KEY">VALUE</string> resources take part in
// spreadsheet synchronization; every top-level child of <resources>
// contributes one entry keyed by its name attribute.
package android

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/pblondin/stringify/resource"
)

// DefaultFileName is the conventional Android resource file name.
const DefaultFileName = "strings.xml"

// ---------------------------------------------------------------------------
// Language detection
// ---------------------------------------------------------------------------

// reValuesLang captures the language suffix of a values directory in a
// resource path: "" for values/, "-fr" for values-fr/, and the first
// three suffix characters ("-fr") for region-qualified directories like
// values-fr-rCA/.
var reValuesLang = regexp.MustCompile(`.*values([-a-z]{0,3})`)

// LanguageFromPath derives the language code from a resource file path.
// values/strings.xml belongs to defaultLang; values-fr/ yields "fr";
// values-fr-rCA/ drops the region qualifier and also yields "fr".
// Paths without a values directory return ErrLanguageNotDetected, which
// callers treat as "skip this file".
func LanguageFromPath(path, defaultLang string) (string, error) {
	m := reValuesLang.FindStringSubmatch(path)
	if m == nil {
		return "", fmt.Errorf("%s: %w", path, resource.ErrLanguageNotDetected)
	}
	suffix := m[1]
	if len(suffix) == 3 {
		suffix = suffix[len(suffix)-2:]
	}
	suffix = strings.TrimPrefix(suffix, "-")
	if strings.TrimSpace(suffix) == "" {
		return defaultLang, nil
	}
	return suffix, nil
}

// DirName returns the values directory for a language: "values" for the
// default language, "values-{lang}" otherwise.
func DirName(lang, defaultLang string) string {
	if lang == defaultLang {
		return "values"
	}
	return "values-" + lang
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Parse extracts ordered (key, value) entries from strings.xml data.
// Each top-level child of <resources> contributes one entry: the key is
// its name attribute, the value its text content (no text means the
// empty string, never an error). Children without a name attribute are
// skipped. Duplicate keys are kept in order; the store applies
// last-one-wins when entries are accumulated per language.
func Parse(data []byte) ([]resource.Entry, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))

	var entries []resource.Entry
	inResources := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break // EOF
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "resources" {
				inResources = true
				continue
			}
			if !inResources {
				continue
			}

			name := ""
			for _, attr := range t.Attr {
				if attr.Name.Local == "name" {
					name = attr.Value
					break
				}
			}

			value, err := readText(dec)
			if err != nil {
				return nil, fmt.Errorf("reading <%s name=%q>: %w", t.Name.Local, name, err)
			}
			if name == "" {
				continue
			}
			entries = append(entries, resource.Entry{Key: name, Value: value})

		case xml.EndElement:
			if t.Name.Local == "resources" {
				inResources = false
			}
		}
	}

	return entries, nil
}

// readText collects the character data of an element until its matching
// close tag. Only the text before the first nested element contributes;
// everything from that child on, tail text included, is consumed and
// discarded.
func readText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	sawChild := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 1 && !sawChild {
				b.Write(t)
			}
		case xml.StartElement:
			depth++
			sawChild = true
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal produces a pretty-printed strings.xml document with one
// <string> element per entry. Entries with an empty key are skipped;
// the grid termination quirk can hand writers a blank row and it must
// not end up in the output.
func Marshal(entries []resource.Entry) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<resources>\n")
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("    <string name=\"%s\">%s</string>\n", xmlEscapeAttr(e.Key), xmlEscape(e.Value)))
	}
	b.WriteString("</resources>\n")
	return []byte(b.String())
}

// xmlEscape escapes the characters that would break element content.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// xmlEscapeAttr additionally escapes the quote delimiting the
// attribute value.
func xmlEscapeAttr(s string) string {
	return strings.ReplaceAll(xmlEscape(s), `"`, "&quot;")
}
