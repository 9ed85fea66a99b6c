// Package ui serves a small dashboard for submitting metrics scans and
// browsing their results.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/javamet/java/scanner"
	"github.com/dhamidi/javamet/report"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("javamet.ui")

type Server struct {
	scanner    *scanner.Scanner
	staticFS   fs.FS
	templates  *template.Template
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"sub": func(a, b int) int {
			return a - b
		},
		"running": func(st scanner.Status) bool {
			return st == scanner.StatusPending || st == scanner.StatusInProgress
		},
		"statusLabel": func(st scanner.Status) string {
			switch st {
			case scanner.StatusPending:
				return "Pending"
			case scanner.StatusInProgress:
				return "In progress"
			case scanner.StatusCompleted:
				return "Completed"
			case scanner.StatusFailed:
				return "Failed"
			}
			return string(st)
		},
		"target": func(req scanner.Request) string {
			switch {
			case req.Path != "":
				return req.Path
			case req.ZipFile != "":
				return filepath.Base(req.ZipFile)
			case len(req.JavaFiles) == 1:
				return req.JavaFiles[0]
			default:
				return fmt.Sprintf("%d files", len(req.JavaFiles))
			}
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		scanner:    scanner.New(),
		staticFS:   staticFS,
		templates:  tmpl,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /scans/{id}", s.handleGetScan)
	s.mux.HandleFunc("GET /scans/{id}/report", s.handleScanReport)
	s.mux.HandleFunc("GET /", s.handleIndex)

	if src := os.Getenv("JAVAMET_SCAN"); src != "" {
		s.scanner.Submit(scanner.Request{Path: src})
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanner.Request

	contentType := r.Header.Get("Content-Type")
	if contentType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
				return
			}
		}

		req.Path = r.FormValue("path")

		if javaFiles := r.Form["java_files"]; len(javaFiles) > 0 {
			req.JavaFiles = javaFiles
		}

		if file, header, err := r.FormFile("zipfile"); err == nil {
			defer file.Close()
			tmpFile, err := os.CreateTemp("", "javamet-*.zip")
			if err != nil {
				http.Error(w, "failed to create temp file: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if _, err := io.Copy(tmpFile, file); err != nil {
				tmpFile.Close()
				os.Remove(tmpFile.Name())
				http.Error(w, "failed to save zip file: "+err.Error(), http.StatusInternalServerError)
				return
			}
			tmpFile.Close()
			req.ZipFile = tmpFile.Name()
			_ = header
		}
	}

	if req.Path == "" && len(req.JavaFiles) == 0 && req.ZipFile == "" {
		http.Error(w, "must provide path, java_files, or zipfile", http.StatusBadRequest)
		return
	}

	id := s.scanner.Submit(req)
	log.Infof("scan %s submitted from %s", id, r.RemoteAddr)
	http.Redirect(w, r, "/scans/"+id, http.StatusSeeOther)
}

type scanPage struct {
	Result *scanner.Result
	Report *report.View
}

type scanPayload struct {
	ID       string         `json:"id"`
	Status   scanner.Status `json:"status"`
	Progress int            `json:"progress"`
	Total    int            `json:"total"`
	Error    string         `json:"error,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Report   *report.View   `json:"report,omitempty"`
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}

	var view *report.View
	if result.Status == scanner.StatusCompleted && result.Metrics != nil {
		view = report.Build(result.Metrics)
	}

	accept := r.Header.Get("Accept")
	if accept == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scanPayload{
			ID:       result.ID,
			Status:   result.Status,
			Progress: result.Progress,
			Total:    result.Total,
			Error:    result.Error,
			Errors:   result.Errors,
			Report:   view,
		})
		return
	}

	s.render(w, "scan.html", scanPage{Result: result, Report: view})
}

var reportContentTypes = map[string]string{
	"":     "text/plain; charset=utf-8",
	"text": "text/plain; charset=utf-8",
	"json": "application/json",
	"xml":  "application/xml",
	"html": "text/html; charset=utf-8",
}

// handleScanReport streams a finished scan through one of the report
// encoders, defaulting to the standalone HTML page.
func (s *Server) handleScanReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, ok := s.scanner.Get(id)
	if !ok {
		http.Error(w, "scan not found", http.StatusNotFound)
		return
	}
	if result.Status != scanner.StatusCompleted || result.Metrics == nil {
		http.Error(w, "scan not finished", http.StatusConflict)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	contentType, ok := reportContentTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown report format %q", format), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	enc, err := report.New(format, w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := enc.Encode(result.Metrics); err != nil {
		http.Error(w, "encode report: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	scans := s.scanner.List()
	sort.Slice(scans, func(i, j int) bool {
		return scans[i].Request.CreatedAt.After(scans[j].Request.CreatedAt)
	})

	data := struct {
		Scans []*scanner.Result
	}{
		Scans: scans,
	}
	s.render(w, "index.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
