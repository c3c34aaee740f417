package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

type jsonReport struct {
	RunID      string           `json:"runId"`
	StartedAt  time.Time        `json:"startedAt"`
	DurationMS int64            `json:"durationMs"`
	Config     jsonConfig       `json:"config"`
	Stats      map[string]int   `json:"stats"`
	Tests      []jsonTestResult `json:"tests"`
}

type jsonConfig struct {
	BaseURL  string   `json:"baseURL"`
	Browsers []string `json:"browsers"`
	Workers  int      `json:"workers"`
	Retries  int      `json:"retries"`
	CI       bool     `json:"ci"`
}

type jsonTestResult struct {
	ID          string   `json:"id"`
	Group       string   `json:"group"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Category    string   `json:"category,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	SkipReason  string   `json:"skipReason,omitempty"`
	DurationMS  int64    `json:"durationMs"`
	Retries     int      `json:"retries"`
	Attachments []string `json:"attachments,omitempty"`
}

func WriteJSON(w io.Writer, results framework.Results, cfg config.Config, info RunInfo) error {
	r := jsonReport{
		RunID:      info.ID,
		StartedAt:  info.Started.UTC(),
		DurationMS: info.Duration.Milliseconds(),
		Config: jsonConfig{
			BaseURL:  cfg.BaseURL,
			Browsers: cfg.Browsers,
			Workers:  cfg.Workers,
			Retries:  cfg.Retries,
			CI:       cfg.CI,
		},
		Stats: map[string]int{"total": len(results.Tests)},
		Tests: make([]jsonTestResult, 0, len(results.Tests)),
	}
	for status, n := range results.Counts() {
		r.Stats[string(status)] = n
	}
	for _, t := range results.Tests {
		r.Tests = append(r.Tests, jsonTestResult{
			ID:          t.TestID.String(),
			Group:       t.TestID.Group(),
			Name:        t.TestID.Name(),
			Status:      string(t.Status),
			Category:    string(t.Category),
			Errors:      errorStrings(t.Errors),
			SkipReason:  t.SkipReason,
			DurationMS:  t.Duration.Milliseconds(),
			Retries:     t.Retries,
			Attachments: t.Attachments,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
