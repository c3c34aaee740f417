// Package report writes the results of a run to files: a JSON document, a JUnit XML file
// for CI systems, and an HTML summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

// RunInfo describes one run of the suite.
type RunInfo struct {
	ID       string
	Started  time.Time
	Duration time.Duration
}

func NewRunInfo(started time.Time) RunInfo {
	return RunInfo{ID: uuid.New().String(), Started: started}
}

// WriteAll writes every file-based report enabled in cfg and returns the paths written.
func WriteAll(results framework.Results, cfg config.Config, info RunInfo) ([]string, error) {
	var written []string
	outputs := []struct {
		reporter string
		path     string
		write    func(io.Writer) error
	}{
		{config.ReporterJSON, cfg.JSONReportPath(), func(w io.Writer) error { return WriteJSON(w, results, cfg, info) }},
		{config.ReporterJUnit, cfg.JUnitReportPath(), func(w io.Writer) error { return WriteJUnit(w, results) }},
		{config.ReporterHTML, cfg.HTMLReportPath(), func(w io.Writer) error { return WriteHTML(w, results, cfg, info) }},
	}
	for _, o := range outputs {
		if !cfg.HasReporter(o.reporter) {
			continue
		}
		if err := writeFile(o.path, o.write); err != nil {
			return written, fmt.Errorf("could not write %s report: %w", o.reporter, err)
		}
		written = append(written, o.path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func errorStrings(errs []error) []string {
	ret := make([]string, 0, len(errs))
	for _, e := range errs {
		ret = append(ret, e.Error())
	}
	return ret
}
