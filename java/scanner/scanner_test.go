package scanner

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestJavaFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "App.java"), "class App {\n}\n")
	writeFile(t, filepath.Join(dir, "sub", "Util.java"), "class Util {\n}\n")
	writeFile(t, filepath.Join(dir, "sub", "notes.txt"), "not java\n")
	writeFile(t, filepath.Join(dir, ".git", "Ignored.java"), "class Ignored {\n}\n")

	files, err := JavaFiles(dir)
	if err != nil {
		t.Fatalf("JavaFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "App.java"),
		filepath.Join(dir, "sub", "Util.java"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Expected %v, got %v", want, files)
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.java")
	bad := filepath.Join(dir, "Bad.java")
	writeFile(t, good, "package p;\n\nclass Good {\n}\n")
	writeFile(t, bad, "class {\n")

	root, problems, err := ScanFiles(context.Background(), []string{good, bad, filepath.Join(dir, "missing.java")})
	if err != nil {
		t.Fatalf("ScanFiles failed: %v", err)
	}
	if len(problems) != 2 {
		t.Errorf("Expected 2 problems, got %v", problems)
	}
	pkgs := root.Packages()
	if len(pkgs) != 1 || pkgs[0].Name != "p" {
		t.Errorf("Expected package p from the good file, got %+v", pkgs)
	}
}

func TestScanFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "App.java")
	writeFile(t, file, "class App {\n}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ScanFiles(ctx, []string{file})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.java"), "package p;\n\nclass A {\n}\n")
	writeFile(t, filepath.Join(dir, "sub", "B.java"), "package p;\n\nclass B {\n}\n")

	root, problems, err := ScanDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("Unexpected problems: %v", problems)
	}
	if len(root.Packages()[0].Units) != 2 {
		t.Errorf("Expected 2 units, got %d", len(root.Packages()[0].Units))
	}
}

func waitForStatus(t *testing.T, s *Scanner, id string, want Status) *Result {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := s.Get(id); ok && res.Status == want {
			return res
		}
		time.Sleep(10 * time.Millisecond)
	}
	res, _ := s.Get(id)
	t.Fatalf("Timed out waiting for status %q, last state %+v", want, res)
	return nil
}

func TestScannerProcessesDirRequest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.java"), "package p;\n\nclass A {\n}\n")
	writeFile(t, filepath.Join(dir, "B.java"), "package p;\n\nclass B {\n}\n")

	s := New()
	id := s.Submit(Request{Path: dir})
	if id != "1" {
		t.Errorf("Expected first id to be 1, got %q", id)
	}

	res := waitForStatus(t, s, id, StatusCompleted)
	if res.Totals.CompilationUnits != 2 {
		t.Errorf("Expected 2 units, got %d", res.Totals.CompilationUnits)
	}
	if res.Progress != 2 || res.Total != 2 {
		t.Errorf("Expected progress 2/2, got %d/%d", res.Progress, res.Total)
	}
	if res.ProgressPercent() != 100 {
		t.Errorf("Expected 100 percent, got %d", res.ProgressPercent())
	}
	if res.StartedAt.IsZero() || res.EndedAt.IsZero() {
		t.Error("Expected start and end timestamps")
	}

	if next := s.Submit(Request{Path: dir}); next != "2" {
		t.Errorf("Expected second id to be 2, got %q", next)
	}
	waitForStatus(t, s, "2", StatusCompleted)
	if got := len(s.List()); got != 2 {
		t.Errorf("Expected 2 listed scans, got %d", got)
	}
}

func TestScannerProcessesFileListRequest(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.java")
	bad := filepath.Join(dir, "Bad.java")
	writeFile(t, good, "package p;\n\nclass Good {\n}\n")
	writeFile(t, bad, "class {\n")

	s := New()
	id := s.Submit(Request{JavaFiles: []string{good, bad}})

	res := waitForStatus(t, s, id, StatusCompleted)
	if len(res.Errors) != 1 {
		t.Errorf("Expected 1 problem, got %v", res.Errors)
	}
	if res.Totals.Types != 1 {
		t.Errorf("Expected 1 type from the good file, got %d", res.Totals.Types)
	}
}

func TestScannerProcessesZipRequest(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "sources.zip")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("src/App.java")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	entry.Write([]byte("package p;\n\nclass App {\n}\n"))
	readme, err := zw.Create("README.md")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	readme.Write([]byte("docs\n"))
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	f.Close()

	s := New()
	id := s.Submit(Request{ZipFile: archive})

	res := waitForStatus(t, s, id, StatusCompleted)
	if res.Total != 1 {
		t.Errorf("Expected 1 source in the archive, got %d", res.Total)
	}
	if res.Totals.CompilationUnits != 1 {
		t.Errorf("Expected 1 unit, got %d", res.Totals.CompilationUnits)
	}
}

func TestScannerFailsOnMissingPath(t *testing.T) {
	s := New()
	id := s.Submit(Request{Path: filepath.Join(t.TempDir(), "missing")})

	res := waitForStatus(t, s, id, StatusFailed)
	if res.Error == "" {
		t.Error("Expected an error message")
	}
}

func TestScannerFailsOnEmptyRequest(t *testing.T) {
	s := New()
	id := s.Submit(Request{})

	res := waitForStatus(t, s, id, StatusFailed)
	if res.Error != "no path, java files, or zip file provided" {
		t.Errorf("Unexpected error: %q", res.Error)
	}
}

func TestScannerGetUnknown(t *testing.T) {
	s := New()
	if _, ok := s.Get("99"); ok {
		t.Error("Expected no result for an unknown id")
	}
}

func TestScannerGetReturnsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.java"), "class A {\n}\n")

	s := New()
	id := s.Submit(Request{Path: dir})
	res := waitForStatus(t, s, id, StatusCompleted)

	res.Status = StatusFailed
	again, _ := s.Get(id)
	if again.Status != StatusCompleted {
		t.Error("Expected stored result to be unaffected by snapshot mutation")
	}
}

func TestWatcherDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "App.java")
	writeFile(t, file, "class App {\n}\n")

	events := make(chan []string, 10)
	w := NewWatcher(dir, func(changed []string) {
		events <- changed
	})
	w.SetInterval(10 * time.Millisecond)
	w.Start()
	defer w.Stop()

	// let the baseline pass settle
	time.Sleep(100 * time.Millisecond)
	select {
	case changed := <-events:
		t.Fatalf("Unexpected event before any change: %v", changed)
	default:
	}

	writeFile(t, file, "class App {\n    int x;\n}\n")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(file, future, future); err != nil {
		t.Fatalf("Failed to bump mtime: %v", err)
	}

	select {
	case changed := <-events:
		if len(changed) != 1 || changed[0] != file {
			t.Errorf("Expected %q to change, got %v", file, changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for a modification event")
	}

	added := filepath.Join(dir, "New.java")
	writeFile(t, added, "class New {\n}\n")
	select {
	case changed := <-events:
		if len(changed) != 1 || changed[0] != added {
			t.Errorf("Expected %q to be reported, got %v", added, changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for an addition event")
	}

	if err := os.Remove(added); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	select {
	case changed := <-events:
		if len(changed) != 1 || changed[0] != added {
			t.Errorf("Expected %q to be reported as removed, got %v", added, changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for a removal event")
	}
}
