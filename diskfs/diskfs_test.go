package diskfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	want := []string{
		writeFixture(t, root, filepath.Join("res", "values", "strings.xml")),
		writeFixture(t, root, filepath.Join("res", "values-fr", "strings.xml")),
	}
	writeFixture(t, root, filepath.Join("res", "values", "colors.xml"))

	got, err := FindFiles(root, func(path string) bool {
		return filepath.Base(path) == "strings.xml"
	})
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("FindFiles returned %d files, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindFiles[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindFilesNilMatch(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.txt")
	writeFixture(t, root, filepath.Join("sub", "b.txt"))

	got, err := FindFiles(root, nil)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FindFiles returned %d files, want 2: %v", len(got), got)
	}
}

func TestFindFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, filepath.Join("zz", "file"))
	writeFixture(t, root, filepath.Join("aa", "file"))

	got, err := FindFiles(root, nil)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	if len(got) != 2 || !strings.Contains(got[0], "aa") {
		t.Errorf("FindFiles not sorted: %v", got)
	}
}

func TestFindFilesMissingRoot(t *testing.T) {
	if _, err := FindFiles(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("FindFiles on missing root: expected error")
	}
}

func TestSaveFileCreatesParents(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "res", "values-fr", "strings.xml")
	if err := SaveFile(path, []byte("<resources/>")); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<resources/>" {
		t.Errorf("ReadFile = %q, want %q", data, "<resources/>")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ReadFile on missing file: expected error")
	}
}
