package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// TargetInfo is what the preflight check learned about the site under test.
type TargetInfo struct {
	URL        string
	StatusCode int
	Server     string
}

// AwaitTarget polls the site under test until it answers with a status below 500, or
// until the timeout expires. Any answer, including a redirect or a 404, proves the origin
// is reachable; the tests themselves decide what is correct.
func AwaitTarget(client *http.Client, url string, timeout time.Duration, output io.Writer) (TargetInfo, error) {
	if client == nil {
		client = http.DefaultClient
	}
	fmt.Fprintf(output, "Connecting to %s", url)

	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 500 {
				fmt.Fprintln(output)
				return TargetInfo{
					URL:        resp.Request.URL.String(),
					StatusCode: resp.StatusCode,
					Server:     resp.Header.Get("Server"),
				}, nil
			}
			lastErr = fmt.Errorf("site returned status code %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return TargetInfo{}, fmt.Errorf("timed out, result of last query was: %w", lastErr)
		}
		time.Sleep(time.Millisecond * 250)
	}
}
