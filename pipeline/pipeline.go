// Package pipeline implements the two synchronization flows: export,
// which fetches the spreadsheet and regenerates per-language resource
// files, and import, which scans resource files and rebuilds the
// spreadsheet grid. Platform specifics are bundled behind a closed
// set of codecs so the flows themselves stay platform-agnostic.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pblondin/stringify/android"
	"github.com/pblondin/stringify/config"
	"github.com/pblondin/stringify/diskfs"
	"github.com/pblondin/stringify/grid"
	"github.com/pblondin/stringify/ios"
	"github.com/pblondin/stringify/langmeta"
	"github.com/pblondin/stringify/resource"
	"github.com/pblondin/stringify/sheet"
	"github.com/pblondin/stringify/translation"
)

// Platform identifies one of the supported resource formats.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// FS is the slice of the filesystem the pipelines touch.
type FS interface {
	FindFiles(root string, match func(path string) bool) ([]string, error)
	ReadFile(path string) ([]byte, error)
	SaveFile(path string, data []byte) error
}

// DiskFS backs FS with the real filesystem.
type DiskFS struct{}

func (DiskFS) FindFiles(root string, match func(string) bool) ([]string, error) {
	return diskfs.FindFiles(root, match)
}

func (DiskFS) ReadFile(path string) ([]byte, error) { return diskfs.ReadFile(path) }

func (DiskFS) SaveFile(path string, data []byte) error { return diskfs.SaveFile(path, data) }

// Logger receives progress and skip notices. A nil logger silences
// them.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}

// ---------------------------------------------------------------------------
// Codecs
// ---------------------------------------------------------------------------

// codec bundles everything platform-specific: the resource file name,
// language detection, directory layout, and the parse/marshal pair.
type codec struct {
	fileName string
	language func(path string) (string, error)
	dirName  func(lang string) string
	parse    func(data []byte) ([]resource.Entry, error)
	marshal  func(entries []resource.Entry) []byte
}

func newCodec(p Platform, cfg config.Config) (codec, error) {
	switch p {
	case PlatformAndroid:
		return codec{
			fileName: cfg.Android.XMLName,
			language: func(path string) (string, error) {
				return android.LanguageFromPath(path, cfg.Android.DefaultLanguage)
			},
			dirName: func(lang string) string {
				return android.DirName(lang, cfg.Android.DefaultLanguage)
			},
			parse:   android.Parse,
			marshal: android.Marshal,
		}, nil
	case PlatformIOS:
		return codec{
			fileName: cfg.IOS.Filename,
			language: ios.LanguageFromPath,
			dirName:  ios.DirName,
			parse:    ios.Parse,
			marshal:  ios.Marshal,
		}, nil
	}
	return codec{}, fmt.Errorf("unknown platform %q", p)
}

// LanguageFromPath resolves the language a resource file at path
// holds, per the platform's directory layout.
func LanguageFromPath(p Platform, path string, cfg config.Config) (string, error) {
	c, err := newCodec(p, cfg)
	if err != nil {
		return "", err
	}
	return c.language(path)
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// Exporter regenerates resource files from the spreadsheet.
type Exporter struct {
	Sheets sheet.Reader
	Files  FS
	Config config.Config
	Log    Logger
}

// Run fetches the spreadsheet once and writes one resource file per
// language for each requested platform.
func (e Exporter) Run(ctx context.Context, platforms ...Platform) error {
	log := e.Log
	if log == nil {
		log = nopLogger{}
	}

	g, err := e.Sheets.ReadGrid(ctx, e.Config.Spreadsheet)
	if err != nil {
		return fmt.Errorf("fetching %q: %w", e.Config.Spreadsheet, err)
	}
	store, err := grid.ToStore(g)
	if err != nil {
		return fmt.Errorf("reading %q: %w", e.Config.Spreadsheet, err)
	}

	langs := store.Languages()
	sort.Strings(langs)

	for _, p := range platforms {
		c, err := newCodec(p, e.Config)
		if err != nil {
			return err
		}
		for _, lang := range langs {
			path := filepath.Join(e.Config.Path, c.dirName(lang), c.fileName)
			if err := e.Files.SaveFile(path, c.marshal(entriesFor(store, lang))); err != nil {
				return err
			}
			log.Infof("wrote %s (%s)", path, langmeta.Name(lang))
		}
	}
	return nil
}

// entriesFor flattens one language column in key order. Keys the
// language has no value for come out empty, keeping every file aligned
// on the same key set.
func entriesFor(store *translation.Store, lang string) []resource.Entry {
	keys := store.Keys()
	entries := make([]resource.Entry, 0, len(keys))
	for _, key := range keys {
		value, _, _ := store.Get(key, lang)
		entries = append(entries, resource.Entry{Key: key, Value: value})
	}
	return entries
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

// Importer rebuilds the spreadsheet from resource files found on disk.
type Importer struct {
	Sheets sheet.Writer
	Files  FS
	Config config.Config
	Log    Logger
}

// Run scans the configured path for the platform's resource files,
// merges them into one grid, and replaces the spreadsheet with it.
// Files whose language cannot be determined are skipped with a
// warning; any other failure aborts the run.
func (i Importer) Run(ctx context.Context, platform Platform) error {
	log := i.Log
	if log == nil {
		log = nopLogger{}
	}

	c, err := newCodec(platform, i.Config)
	if err != nil {
		return err
	}

	paths, err := i.Files.FindFiles(i.Config.Path, func(path string) bool {
		return filepath.Base(path) == c.fileName
	})
	if err != nil {
		return err
	}

	store := translation.NewStore()
	for _, path := range paths {
		lang, err := c.language(path)
		if err != nil {
			if errors.Is(err, resource.ErrLanguageNotDetected) {
				log.Warningf("skipping %s: %v", path, err)
				continue
			}
			return err
		}

		data, err := i.Files.ReadFile(path)
		if err != nil {
			return err
		}
		entries, err := c.parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		store.AddLanguage(lang)
		for _, entry := range entries {
			if entry.Key == "" {
				continue
			}
			store.Add(entry.Key, lang, entry.Value)
		}
		log.Infof("read %s (%s, %d keys)", path, langmeta.Name(lang), len(entries))
	}

	if err := i.Sheets.WriteGrid(ctx, i.Config.Spreadsheet, grid.FromStore(store)); err != nil {
		return fmt.Errorf("updating %q: %w", i.Config.Spreadsheet, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mode dispatch
// ---------------------------------------------------------------------------

// Run executes the flow selected by cfg.Mode against the given
// spreadsheet backend and the real filesystem.
func Run(ctx context.Context, cfg config.Config, sheets sheet.ReadWriter, log Logger) error {
	exp := Exporter{Sheets: sheets, Files: DiskFS{}, Config: cfg, Log: log}
	imp := Importer{Sheets: sheets, Files: DiskFS{}, Config: cfg, Log: log}

	switch cfg.Mode {
	case config.ModeExportAll:
		return exp.Run(ctx, PlatformAndroid, PlatformIOS)
	case config.ModeExportAndroid:
		return exp.Run(ctx, PlatformAndroid)
	case config.ModeExportIOS:
		return exp.Run(ctx, PlatformIOS)
	case config.ModeImportAndroid:
		return imp.Run(ctx, PlatformAndroid)
	case config.ModeImportIOS:
		return imp.Run(ctx, PlatformIOS)
	}
	return fmt.Errorf("unknown mode %q", cfg.Mode)
}
