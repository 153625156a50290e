package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smps-go/smps/dataline"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func newTestBase(t *testing.T, path string) *Base {
	t.Helper()
	b, err := NewBase(path, []string{".a", ".b"})
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	return b
}

func TestFileLocationResolvesExactPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.a", "ONE\n")

	b := newTestBase(t, path)
	got, err := b.fileLocation()
	if err != nil {
		t.Fatalf("fileLocation: %v", err)
	}
	if got != path {
		t.Errorf("fileLocation() = %q, want %q", got, path)
	}
}

func TestFileLocationTriesExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "problem.b", "ONE\n")
	base := filepath.Join(dir, "problem")

	b := newTestBase(t, base)
	got, err := b.fileLocation()
	if err != nil {
		t.Fatalf("fileLocation: %v", err)
	}
	want := base + ".b"
	if got != want {
		t.Errorf("fileLocation() = %q, want %q", got, want)
	}
}

func TestNewBaseFailsWhenNothingResolves(t *testing.T) {
	dir := t.TempDir()
	_, err := NewBase(filepath.Join(dir, "missing"), []string{".a", ".b"})
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

// driverFixture is a tiny two-section grammar (FIRST, SECOND) used to
// exercise the state machine independent of any real file-type parser.
func driverFixture(t *testing.T, contents string) (*Base, *[]string, *[]string) {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.a", contents)

	b := newTestBase(t, path)
	var firstSeen, secondSeen []string
	steps := map[string]Handler{
		"FIRST": func(line dataline.Line) error {
			if line.IsHeader() {
				return nil
			}
			firstSeen = append(firstSeen, line.Raw())
			return nil
		},
		"SECOND": func(line dataline.Line) error {
			if line.IsHeader() {
				return nil
			}
			secondSeen = append(secondSeen, line.Raw())
			return nil
		},
	}
	b.Init([]string{"FIRST", "SECOND"}, steps, nil)
	return b, &firstSeen, &secondSeen
}

func TestParseDispatchesToSections(t *testing.T) {
	contents := "FIRST\n  a one\nSECOND\n  b two\nENDATA\n"
	b, first, second := driverFixture(t, contents)

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(*first) != 1 || (*first)[0] != "  a one" {
		t.Errorf("first section saw %v", *first)
	}
	if len(*second) != 1 || (*second)[0] != "  b two" {
		t.Errorf("second section saw %v", *second)
	}
}

func TestParseStopsAtEndata(t *testing.T) {
	contents := "FIRST\n  a one\nENDATA\nSECOND\n  b two\n"
	b, first, second := driverFixture(t, contents)

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(*first) != 1 {
		t.Errorf("first section saw %v", *first)
	}
	if len(*second) != 0 {
		t.Errorf("expected SECOND to never run after ENDATA, saw %v", *second)
	}
}

func TestParseSkipsUnknownSectionAndWarns(t *testing.T) {
	contents := "FIRST\n  a one\nBOGUS\n  ignored line\nSECOND\n  b two\nENDATA\n"
	b, first, second := driverFixture(t, contents)

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(*first) != 1 {
		t.Errorf("first section saw %v", *first)
	}
	if len(*second) != 1 {
		t.Errorf("second section saw %v", *second)
	}
	if len(b.Warnings()) != 1 {
		t.Fatalf("expected one warning, got %v", b.Warnings())
	}
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	contents := "FIRST\n* a comment\n\n  a one\nENDATA\n"
	b, first, _ := driverFixture(t, contents)

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(*first) != 1 || (*first)[0] != "  a one" {
		t.Errorf("first section saw %v", *first)
	}
}

// TestInitialHeaderDispatchedAsData confirms the first header transition
// rule: the file's own opening header (its first word equals the initial
// state) is not skipped — it is dispatched to that section's handler
// like any other line, because it still carries a payload (NAME/TIME/
// STOCH's problem name).
func TestInitialHeaderDispatchedAsData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.a", "FIRST         HELLO\n  a one\nENDATA\n")

	b := newTestBase(t, path)
	var seen []string
	steps := map[string]Handler{
		"FIRST": func(line dataline.Line) error {
			seen = append(seen, line.Raw())
			return nil
		},
		"SECOND": func(dataline.Line) error { return nil },
	}
	b.Init([]string{"FIRST", "SECOND"}, steps, nil)

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("FIRST handler saw %v, want 2 lines (header + data)", seen)
	}
	if seen[0] != "FIRST         HELLO" {
		t.Errorf("first line dispatched = %q, want the header line itself", seen[0])
	}
}

func TestHeaderHookFiresOnTransition(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.a", "FIRST\nSECOND        EXTRA\n  x\nENDATA\n")

	b := newTestBase(t, path)
	var captured string
	steps := map[string]Handler{
		"FIRST":  func(dataline.Line) error { return nil },
		"SECOND": func(dataline.Line) error { return nil },
	}
	b.Init([]string{"FIRST", "SECOND"}, steps, nil)
	b.SetHeaderHooks(map[string]Handler{
		"SECOND": func(line dataline.Line) error {
			captured = line.SecondHeaderWord()
			return nil
		},
	})

	if err := b.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if captured != "EXTRA" {
		t.Errorf("header hook captured %q, want %q", captured, "EXTRA")
	}
}
