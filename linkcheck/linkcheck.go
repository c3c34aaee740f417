// Package linkcheck probes a small sample of links over plain HTTP, outside the browser,
// and reports which of them answer with 404 Not Found.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/demos-qa/telerik-demos-tests/framework"
)

const (
	DefaultMaxLinks = 5
	defaultInterval = 100 * time.Millisecond
	// maxDrain bounds how much of a response body is read so the connection can be reused.
	maxDrain = 4 << 10
)

// Auditor checks links one at a time. The zero value is usable.
type Auditor struct {
	Client *http.Client
	// MaxLinks bounds how many hrefs are taken from the front of the list. Values below 1
	// mean DefaultMaxLinks.
	MaxLinks int
	// Limiter paces the requests. If nil, requests are spaced by 100ms.
	Limiter *rate.Limiter
	Logger  framework.Logger
}

// Report is the outcome of one audit. Unknown holds hrefs whose request failed without a
// response; those are not counted as broken.
type Report struct {
	Sampled int
	Checked []string
	Broken  []string
	Unknown []string
}

func (r Report) OK() bool {
	return len(r.Broken) == 0
}

// Audit requests each href in the sample. Empty hrefs within the sample are skipped. It
// only returns an error if ctx ends before the audit is complete.
func (a Auditor) Audit(ctx context.Context, hrefs []string) (Report, error) {
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	limiter := a.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(defaultInterval), 1)
	}
	logger := a.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	max := a.MaxLinks
	if max < 1 {
		max = DefaultMaxLinks
	}

	sample := hrefs
	if len(sample) > max {
		sample = sample[:max]
	}
	report := Report{Sampled: len(sample)}
	for _, href := range sample {
		if href == "" {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("link audit interrupted: %w", err)
		}
		status, err := probe(ctx, client, href)
		report.Checked = append(report.Checked, href)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return report, fmt.Errorf("link audit interrupted: %w", ctx.Err())
			}
			logger.Printf("could not check %s: %s", href, err)
			report.Unknown = append(report.Unknown, href)
		case status == http.StatusNotFound:
			logger.Printf("broken link: %s", href)
			report.Broken = append(report.Broken, href)
		default:
			logger.Printf("%s -> %d", href, status)
		}
	}
	return report, nil
}

func probe(ctx context.Context, client *http.Client, href string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	return resp.StatusCode, nil
}
