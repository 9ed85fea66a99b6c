package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/javamet/config"
	"github.com/dhamidi/javamet/java/scanner"
	"github.com/dhamidi/javamet/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var format string
	var output string
	var excludes []string

	cmd := &cobra.Command{
		Use:   "report [path...]",
		Short: "Measure Java sources and print a metrics report",
		Long: `Report parses the given directories and .java files, collects
source code metrics for them, and prints one report. With no arguments
it measures the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runReport(cmd, args, format, output, excludes)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "report format: text, json, xml, or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "glob pattern of files to skip, may be repeated")

	return cmd
}

func runReport(cmd *cobra.Command, paths []string, format, output string, excludes []string) error {
	cfg, err := config.Load(configRoot(paths))
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}
	if output == "" {
		output = cfg.Output
	}
	cfg.Exclude = append(cfg.Exclude, excludes...)

	files, err := sourceFiles(paths, cfg)
	if err != nil {
		return err
	}

	tree, problems, err := scanner.ScanFiles(cmd.Context(), files)
	if err != nil {
		return err
	}
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}

	enc, err := report.New(format, out)
	if err != nil {
		return err
	}
	return enc.Encode(tree)
}

// configRoot picks where to look for the configuration file: the first
// scanned directory, or the directory of the first named file.
func configRoot(paths []string) string {
	first := paths[0]
	if info, err := os.Stat(first); err == nil && info.IsDir() {
		return first
	}
	return filepath.Dir(first)
}

func sourceFiles(paths []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := scanner.JavaFiles(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}

	kept := files[:0]
	for _, f := range files {
		if !cfg.Excluded(f) {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
