package ui

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dhamidi/javamet/java/scanner"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JAVAMET_SCAN", "")
	s, err := NewServer()
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func pollScan(t *testing.T, s *Server, location string) scanPayload {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, location, nil)
		req.Header.Set("Accept", "application/json")
		rec := do(s, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200 polling %s, got %d", location, rec.Code)
		}
		var p scanPayload
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("Failed to decode scan payload: %v", err)
		}
		if p.Status == scanner.StatusCompleted || p.Status == scanner.StatusFailed {
			return p
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s to finish", location)
	return scanPayload{}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "javamet") {
		t.Error("Expected the page title")
	}
	if !strings.Contains(body, "No scans yet") {
		t.Error("Expected the empty state")
	}
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/css") {
		t.Errorf("Expected a css content type, got %q", ct)
	}
}

func TestScanFormRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := "package p;\n\nclass App {\n    void run() {\n        go();\n    }\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "App.java"), []byte(source), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	s := newTestServer(t)

	form := url.Values{"path": {dir}}
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(s, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if location != "/scans/1" {
		t.Fatalf("Expected redirect to /scans/1, got %q", location)
	}

	p := pollScan(t, s, location)
	if p.Status != scanner.StatusCompleted {
		t.Fatalf("Expected a completed scan, got %q (%s)", p.Status, p.Error)
	}
	if p.Report == nil {
		t.Fatal("Expected an embedded report")
	}
	if p.Report.Totals.CompilationUnits != 1 || p.Report.Totals.Statements != 1 {
		t.Errorf("Unexpected totals: %+v", p.Report.Totals)
	}

	t.Run("detail page", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, location, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Completed") {
			t.Error("Expected the completed status label")
		}
	})

	t.Run("index lists the scan", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
		if !strings.Contains(rec.Body.String(), dir) {
			t.Error("Expected the scan target on the index page")
		}
	})

	t.Run("report formats", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, location+"/report?format=json", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %q", ct)
		}

		rec = do(s, httptest.NewRequest(http.MethodGet, location+"/report", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
			t.Error("Expected the standalone html report")
		}

		rec = do(s, httptest.NewRequest(http.MethodGet, location+"/report?format=yaml", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for an unknown format, got %d", rec.Code)
		}
	})
}

func TestScanJSONBody(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "A.java"), []byte("class A {\n}\n"), 0o644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	s := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"path": dir})
	req := httptest.NewRequest(http.MethodPost, "/scan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := do(s, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d: %s", rec.Code, rec.Body.String())
	}

	p := pollScan(t, s, rec.Header().Get("Location"))
	if p.Status != scanner.StatusCompleted {
		t.Errorf("Expected a completed scan, got %q", p.Status)
	}
}

func TestScanZipUpload(t *testing.T) {
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	entry, err := zw.Create("src/App.java")
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	entry.Write([]byte("package p;\n\nclass App {\n}\n"))
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("zipfile", "sources.zip")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(archive.Bytes())
	mw.Close()

	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/scan", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(s, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d: %s", rec.Code, rec.Body.String())
	}

	p := pollScan(t, s, rec.Header().Get("Location"))
	if p.Status != scanner.StatusCompleted {
		t.Fatalf("Expected a completed scan, got %q (%s)", p.Status, p.Error)
	}
	if p.Total != 1 {
		t.Errorf("Expected 1 file in the archive, got %d", p.Total)
	}
}

func TestScanRejectsEmptyRequest(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must provide") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestGetScanUnknown(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/scans/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}
