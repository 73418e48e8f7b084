// Package config holds the run configuration for stringify.
//
// A Config is built exactly once at startup (defaults, then the
// optional .stringify.yaml project file, then command-line flags) and
// passed by value into every component that needs it. No component
// reads ambient global state.
package config

import (
	"fmt"
	"strings"
)

// Mode selects which synchronization flow a run executes.
type Mode string

const (
	// ModeExportAll regenerates resource files for both platforms from
	// one fetched spreadsheet.
	ModeExportAll Mode = "export_all"
	// ModeExportAndroid regenerates Android values-XX/strings.xml files.
	ModeExportAndroid Mode = "export_android"
	// ModeExportIOS regenerates iOS XX.lproj/Localizable.strings files.
	ModeExportIOS Mode = "export_ios"
	// ModeImportAndroid scans Android resource files into the spreadsheet.
	ModeImportAndroid Mode = "import_android"
	// ModeImportIOS scans iOS resource files into the spreadsheet.
	ModeImportIOS Mode = "import_ios"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeExportAll, ModeExportAndroid, ModeExportIOS, ModeImportAndroid, ModeImportIOS:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (valid: export_all, export_android, export_ios, import_android, import_ios)", s)
}

// IsExport reports whether the mode reads the spreadsheet and writes
// resource files (as opposed to the other way around).
func (m Mode) IsExport() bool {
	return m == ModeExportAll || m == ModeExportAndroid || m == ModeExportIOS
}

// ---------------------------------------------------------------------------
// Per-loader options
// ---------------------------------------------------------------------------

// AndroidOptions enumerates the recognized Android loader/writer options.
type AndroidOptions struct {
	// XMLName is the resource file name to look for and to write.
	XMLName string
	// DefaultLanguage is the language of the bare values/ directory.
	DefaultLanguage string
}

// IOSOptions enumerates the recognized iOS loader/writer options.
type IOSOptions struct {
	// Filename is the .strings file name to look for and to write.
	Filename string
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Default values applied by NewConfig.
const (
	DefaultLanguage        = "en"
	DefaultXMLName         = "strings.xml"
	DefaultIOSFilename     = "Localizable.strings"
	DefaultPath            = "."
	DefaultCredentialsPath = ".credentials"
)

// Config is the complete, explicit configuration of one run.
type Config struct {
	// Mode selects the flow (export/import × platform).
	Mode Mode
	// Spreadsheet names the shared document. A name ending in .xlsx is
	// treated as a local workbook path; anything else is looked up on
	// Google Sheets. Required.
	Spreadsheet string
	// Path is the resource root: the destination for exports and the
	// scan root for imports.
	Path string
	// CredentialsPath is where the OAuth token is cached.
	CredentialsPath string

	// Android holds the Android loader/writer options.
	Android AndroidOptions
	// IOS holds the iOS loader/writer options.
	IOS IOSOptions
}

// NewConfig returns a Config populated with defaults.
func NewConfig() Config {
	return Config{
		Mode:            ModeExportAll,
		Path:            DefaultPath,
		CredentialsPath: DefaultCredentialsPath,
		Android: AndroidOptions{
			XMLName:         DefaultXMLName,
			DefaultLanguage: DefaultLanguage,
		},
		IOS: IOSOptions{
			Filename: DefaultIOSFilename,
		},
	}
}

// Validate checks the invariants a run depends on.
func (c Config) Validate() error {
	if c.Spreadsheet == "" {
		return fmt.Errorf("spreadsheet name must not be empty")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// UseWorkbook reports whether the spreadsheet name refers to a local
// .xlsx workbook instead of a Google Sheets document.
func (c Config) UseWorkbook() bool {
	return strings.HasSuffix(strings.ToLower(c.Spreadsheet), ".xlsx")
}
