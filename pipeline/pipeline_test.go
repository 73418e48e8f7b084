package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/pblondin/stringify/config"
	"github.com/pblondin/stringify/grid"
)

// memFS is an in-memory FS for pipeline tests.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}}
}

func (m *memFS) FindFiles(root string, match func(string) bool) ([]string, error) {
	var found []string
	for path := range m.files {
		if !strings.HasPrefix(path, root) {
			continue
		}
		if match == nil || match(path) {
			found = append(found, path)
		}
	}
	sort.Strings(found)
	return found, nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: no such file", path)
	}
	return data, nil
}

func (m *memFS) SaveFile(path string, data []byte) error {
	m.files[path] = data
	return nil
}

// memSheet is an in-memory spreadsheet backend.
type memSheet struct {
	grids map[string]grid.Grid
}

func newMemSheet() *memSheet {
	return &memSheet{grids: map[string]grid.Grid{}}
}

func (m *memSheet) ReadGrid(_ context.Context, name string) (grid.Grid, error) {
	g, ok := m.grids[name]
	if !ok {
		return nil, fmt.Errorf("%s: no such document", name)
	}
	return g, nil
}

func (m *memSheet) WriteGrid(_ context.Context, name string, g grid.Grid) error {
	m.grids[name] = g
	return nil
}

// recordLogger captures log lines for inspection.
type recordLogger struct {
	infos    []string
	warnings []string
}

func (l *recordLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Warningf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func testConfig(mode config.Mode) config.Config {
	c := config.NewConfig()
	c.Mode = mode
	c.Spreadsheet = "App Copy"
	c.Path = "res"
	return c
}

func TestExportAndroid(t *testing.T) {
	sheets := newMemSheet()
	sheets.grids["App Copy"] = grid.Grid{
		{"", "en", "fr"},
		{"hello", "Hello", "Bonjour"},
		{"bye", "Bye", ""},
	}
	fs := newMemFS()

	exp := Exporter{Sheets: sheets, Files: fs, Config: testConfig(config.ModeExportAndroid)}
	if err := exp.Run(context.Background(), PlatformAndroid); err != nil {
		t.Fatalf("Run: %v", err)
	}

	en, err := fs.ReadFile("res/values/strings.xml")
	if err != nil {
		t.Fatalf("default-language file not written: %v", err)
	}
	if !strings.Contains(string(en), `<string name="hello">Hello</string>`) {
		t.Errorf("values/strings.xml missing hello entry:\n%s", en)
	}

	fr, err := fs.ReadFile("res/values-fr/strings.xml")
	if err != nil {
		t.Fatalf("values-fr file not written: %v", err)
	}
	if !strings.Contains(string(fr), `<string name="hello">Bonjour</string>`) {
		t.Errorf("values-fr/strings.xml missing hello entry:\n%s", fr)
	}
	if !strings.Contains(string(fr), `<string name="bye"></string>`) {
		t.Errorf("values-fr/strings.xml should align on the full key set:\n%s", fr)
	}
}

func TestExportIOS(t *testing.T) {
	sheets := newMemSheet()
	sheets.grids["App Copy"] = grid.Grid{
		{"", "en", "fr"},
		{"hello", "Hello", "Bonjour"},
	}
	fs := newMemFS()

	exp := Exporter{Sheets: sheets, Files: fs, Config: testConfig(config.ModeExportIOS)}
	if err := exp.Run(context.Background(), PlatformIOS); err != nil {
		t.Fatalf("Run: %v", err)
	}

	fr, err := fs.ReadFile("res/fr.lproj/Localizable.strings")
	if err != nil {
		t.Fatalf("fr.lproj file not written: %v", err)
	}
	if string(fr) != "\"hello\" = \"Bonjour\";\n" {
		t.Errorf("fr.lproj/Localizable.strings = %q", fr)
	}
}

func TestExportAllWritesBothPlatforms(t *testing.T) {
	sheets := newMemSheet()
	sheets.grids["App Copy"] = grid.Grid{
		{"", "en"},
		{"hello", "Hello"},
	}
	fs := newMemFS()

	exp := Exporter{Sheets: sheets, Files: fs, Config: testConfig(config.ModeExportAll)}
	if err := exp.Run(context.Background(), PlatformAndroid, PlatformIOS); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := fs.ReadFile("res/values/strings.xml"); err != nil {
		t.Errorf("android file not written: %v", err)
	}
	if _, err := fs.ReadFile("res/en.lproj/Localizable.strings"); err != nil {
		t.Errorf("ios file not written: %v", err)
	}
}

func TestImportAndroid(t *testing.T) {
	fs := newMemFS()
	fs.files["res/values/strings.xml"] = []byte(
		"<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<resources>\n" +
			"    <string name=\"hello\">Hello</string>\n" +
			"    <string name=\"bye\">Bye</string>\n</resources>\n")
	fs.files["res/values-fr/strings.xml"] = []byte(
		"<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<resources>\n" +
			"    <string name=\"hello\">Bonjour</string>\n</resources>\n")
	fs.files["res/values/colors.xml"] = []byte("<resources/>")

	sheets := newMemSheet()
	imp := Importer{Sheets: sheets, Files: fs, Config: testConfig(config.ModeImportAndroid)}
	if err := imp.Run(context.Background(), PlatformAndroid); err != nil {
		t.Fatalf("Run: %v", err)
	}

	g, ok := sheets.grids["App Copy"]
	if !ok {
		t.Fatal("spreadsheet not written")
	}
	if len(g) < 1 || len(g[0]) != 3 || g[0][1] != "en" || g[0][2] != "fr" {
		t.Fatalf("header = %v, want [ en fr]", g[0])
	}

	cell := func(key, lang string) string {
		col := map[string]int{"en": 1, "fr": 2}[lang]
		for _, row := range g[1:] {
			if row[0] == key {
				return row[col]
			}
		}
		t.Fatalf("key %q not in grid %v", key, g)
		return ""
	}
	if got := cell("hello", "fr"); got != "Bonjour" {
		t.Errorf("hello/fr = %q, want %q", got, "Bonjour")
	}
	if got := cell("bye", "en"); got != "Bye" {
		t.Errorf("bye/en = %q, want %q", got, "Bye")
	}
	if got := cell("bye", "fr"); got != "" {
		t.Errorf("bye/fr = %q, want empty", got)
	}
}

func TestImportSkipsUndetectedLanguage(t *testing.T) {
	fs := newMemFS()
	fs.files["res/misc/strings.xml"] = []byte("<resources/>")
	fs.files["res/values-de/strings.xml"] = []byte(
		"<resources><string name=\"hello\">Hallo</string></resources>")

	sheets := newMemSheet()
	log := &recordLogger{}
	imp := Importer{Sheets: sheets, Files: fs, Config: testConfig(config.ModeImportAndroid), Log: log}
	if err := imp.Run(context.Background(), PlatformAndroid); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(log.warnings) != 1 || !strings.Contains(log.warnings[0], "res/misc/strings.xml") {
		t.Errorf("warnings = %v, want one skip notice for res/misc/strings.xml", log.warnings)
	}
	g := sheets.grids["App Copy"]
	if len(g) != 2 || g[1][0] != "hello" {
		t.Errorf("grid = %v, want the values-de entry only", g)
	}
}

func TestImportSkipsEmptyKeys(t *testing.T) {
	fs := newMemFS()
	fs.files["res/en.lproj/Localizable.strings"] = []byte("\"\" = \"orphan\";\n\"hello\" = \"Hello\";\n")

	sheets := newMemSheet()
	cfg := testConfig(config.ModeImportIOS)
	imp := Importer{Sheets: sheets, Files: fs, Config: cfg}
	if err := imp.Run(context.Background(), PlatformIOS); err != nil {
		t.Fatalf("Run: %v", err)
	}

	g := sheets.grids["App Copy"]
	if len(g) != 2 {
		t.Fatalf("grid = %v, want header plus one row", g)
	}
	if g[1][0] != "hello" {
		t.Errorf("key = %q, want %q", g[1][0], "hello")
	}
}

func TestRunDispatch(t *testing.T) {
	fs := newMemFS()
	fs.files["res/en.lproj/Localizable.strings"] = []byte("\"hello\" = \"Hello\";\n")

	sheets := newMemSheet()
	cfg := testConfig(config.ModeImportIOS)
	imp := Importer{Sheets: sheets, Files: fs, Config: cfg}
	if err := imp.Run(context.Background(), PlatformIOS); err != nil {
		t.Fatalf("import: %v", err)
	}

	cfg.Mode = config.ModeExportIOS
	cfg.Path = t.TempDir()
	if err := Run(context.Background(), cfg, sheets, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	sheets := newMemSheet()
	sheets.grids["App Copy"] = grid.Grid{
		{"", "en", "fr"},
		{"hello", "Hello", "Bonjour"},
		{"bye", "Bye", "Au revoir"},
	}

	fs := newMemFS()
	cfg := testConfig(config.ModeExportAll)
	exp := Exporter{Sheets: sheets, Files: fs, Config: cfg}
	if err := exp.Run(context.Background(), PlatformAndroid, PlatformIOS); err != nil {
		t.Fatalf("export: %v", err)
	}

	back := newMemSheet()
	imp := Importer{Sheets: back, Files: fs, Config: cfg}
	if err := imp.Run(context.Background(), PlatformAndroid); err != nil {
		t.Fatalf("import: %v", err)
	}

	got := back.grids["App Copy"]
	want := sheets.grids["App Copy"]
	if len(got) != len(want) {
		t.Fatalf("round trip changed row count: got %v, want %v", got, want)
	}
	for _, wrow := range want[1:] {
		found := false
		for _, grow := range got[1:] {
			if grow[0] == wrow[0] {
				found = true
				for c := range wrow {
					if grow[c] != wrow[c] {
						t.Errorf("key %q col %d = %q, want %q", wrow[0], c, grow[c], wrow[c])
					}
				}
			}
		}
		if !found {
			t.Errorf("key %q lost in round trip", wrow[0])
		}
	}
}
