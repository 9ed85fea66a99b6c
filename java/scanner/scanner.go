// Package scanner finds Java sources and runs them through the metrics
// collector, either synchronously for one-shot tools or as background
// scan requests with observable progress.
package scanner

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/javamet/java/metrics"
	"github.com/dhamidi/javamet/java/syntax"
)

var log = commonlog.GetLogger("javamet.scanner")

// JavaFiles lists every .java file under root in walk order, skipping
// dot directories.
func JavaFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list java files in %s: %w", root, err)
	}
	return files, nil
}

// ScanFiles parses and collects the given files into one metrics tree.
// Files that cannot be read or parsed are reported in the returned
// problem list and skipped; the scan itself only fails on cancellation.
func ScanFiles(ctx context.Context, paths []string) (*metrics.Java, []string, error) {
	col := metrics.NewCollector()
	var problems []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, problems, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			problems = append(problems, fmt.Sprintf("read %s: %v", path, err))
			continue
		}
		unit, err := syntax.Parse(ctx, path, data)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		col.Collect(unit)
	}
	return col.Metrics(), problems, nil
}

// ScanDir walks root and collects metrics for every Java source in it.
func ScanDir(ctx context.Context, root string) (*metrics.Java, []string, error) {
	files, err := JavaFiles(root)
	if err != nil {
		return nil, nil, err
	}
	return ScanFiles(ctx, files)
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Request names what to scan: a directory tree, an explicit file list,
// or a zip archive of sources.
type Request struct {
	ID        string
	Path      string
	JavaFiles []string
	ZipFile   string
	CreatedAt time.Time
}

// Result is the observable state of one scan request.
type Result struct {
	ID        string
	Status    Status
	Request   Request
	Metrics   *metrics.Java
	Totals    metrics.Aggregated
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// Scanner processes scan requests on a background goroutine, one at a
// time, and keeps every result for later retrieval.
type Scanner struct {
	mu       sync.RWMutex
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Scanner {
	s := &Scanner{
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.process(req)
	}
}

type scanOutcome struct {
	root   *metrics.Java
	errors []string
}

func (s *Scanner) process(req Request) {
	s.mu.Lock()
	result := s.scans[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	s.mu.Unlock()

	var out scanOutcome
	switch {
	case req.Path != "":
		out = s.processDir(req.ID, req.Path)
	case len(req.JavaFiles) > 0:
		out = s.processFiles(req.ID, req.JavaFiles)
	case req.ZipFile != "":
		out = s.processZip(req.ID, req.ZipFile)
	default:
		out.errors = append(out.errors, "no path, java files, or zip file provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.EndedAt = time.Now()
	result.Errors = out.errors
	empty := true
	if out.root != nil {
		result.Metrics = out.root
		result.Totals = metrics.Of(out.root)
		empty = len(out.root.Packages()) == 0 && len(out.root.ModularUnits) == 0
	}
	if len(out.errors) > 0 && empty {
		result.Status = StatusFailed
		result.Error = out.errors[0]
	} else {
		result.Status = StatusCompleted
	}
	log.Infof("scan %s %s: %d files, %d problems", req.ID, result.Status, result.Total, len(out.errors))
}

func (s *Scanner) processDir(id, root string) scanOutcome {
	var files []string
	var problems []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			problems = append(problems, fmt.Sprintf("walk %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		problems = append(problems, fmt.Sprintf("walk %s: %v", root, err))
	}
	out := s.processFiles(id, files)
	out.errors = append(problems, out.errors...)
	return out
}

func (s *Scanner) processFiles(id string, files []string) scanOutcome {
	s.mu.Lock()
	s.scans[id].Total = len(files)
	s.mu.Unlock()

	col := metrics.NewCollector()
	var out scanOutcome
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("read %s: %v", file, err))
		} else if unit, err := syntax.Parse(context.Background(), file, data); err != nil {
			out.errors = append(out.errors, err.Error())
		} else {
			col.Collect(unit)
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	out.root = col.Metrics()
	return out
}

func (s *Scanner) processZip(id, path string) scanOutcome {
	r, err := zip.OpenReader(path)
	if err != nil {
		return scanOutcome{errors: []string{fmt.Sprintf("open zip: %v", err)}}
	}
	defer r.Close()

	var sources []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if filepath.Ext(f.Name) == ".java" {
			sources = append(sources, f)
		}
	}

	s.mu.Lock()
	s.scans[id].Total = len(sources)
	s.mu.Unlock()

	col := metrics.NewCollector()
	var out scanOutcome
	for i, f := range sources {
		rc, err := f.Open()
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("open %s: %v", f.Name, err))
		} else {
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				out.errors = append(out.errors, fmt.Sprintf("read %s: %v", f.Name, err))
			} else if unit, err := syntax.Parse(context.Background(), f.Name, data); err != nil {
				out.errors = append(out.errors, err.Error())
			} else {
				col.Collect(unit)
			}
		}

		s.mu.Lock()
		s.scans[id].Progress = i + 1
		s.mu.Unlock()
	}
	out.root = col.Metrics()
	return out
}

// Submit queues a scan request and returns its assigned ID.
func (s *Scanner) Submit(req Request) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	req.ID = fmt.Sprintf("%d", s.nextID)
	req.CreatedAt = time.Now()

	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	s.requests <- req
	return req.ID
}

// Get returns a snapshot of one scan result.
func (s *Scanner) Get(id string) (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

// List returns snapshots of every known scan.
func (s *Scanner) List() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*Result, 0, len(s.scans))
	for _, r := range s.scans {
		snapshot := *r
		results = append(results, &snapshot)
	}
	return results
}
