package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dhamidi/javamet/config"
	"github.com/dhamidi/javamet/java/scanner"
	"github.com/dhamidi/javamet/report"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var format string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Rescan and reprint metrics whenever Java sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWatch(cmd, root, format, interval)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "report format: text, json, xml, or html")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval, e.g. 500ms")

	return cmd
}

func runWatch(cmd *cobra.Command, root, format string, interval time.Duration) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Format
	}
	if interval == 0 {
		interval = time.Duration(cfg.Watch.IntervalMS) * time.Millisecond
	}

	enc, err := report.New(format, os.Stdout)
	if err != nil {
		return err
	}

	render := func() {
		files, err := scanner.JavaFiles(root)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		kept := files[:0]
		for _, f := range files {
			if !cfg.Excluded(f) {
				kept = append(kept, f)
			}
		}

		tree, problems, err := scanner.ScanFiles(cmd.Context(), kept)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		if err := enc.Encode(tree); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	render()

	w := scanner.NewWatcher(root, func(changed []string) {
		for _, path := range changed {
			fmt.Fprintln(os.Stderr, "changed:", path)
		}
		render()
	})
	if interval > 0 {
		w.SetInterval(interval)
	}
	w.Start()
	defer w.Stop()

	<-cmd.Context().Done()
	return nil
}
