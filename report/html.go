package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
pre { background: #f6f6f6; padding: 8px; }
</style>
</head>
<body>
%s</body>
</html>
`

// WriteHTML renders a Markdown summary of the run as an HTML page.
func WriteHTML(w io.Writer, results framework.Results, cfg config.Config, info RunInfo) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(results, cfg, info)), &body); err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}
	_, err := fmt.Fprintf(w, pageTemplate, html.EscapeString("Test report "+info.ID), body.String())
	return err
}

// Markdown returns the summary that the HTML report is rendered from.
func Markdown(results framework.Results, cfg config.Config, info RunInfo) string {
	var b strings.Builder
	counts := results.Counts()

	fmt.Fprintf(&b, "# Test report\n\n")
	fmt.Fprintf(&b, "Run `%s` against %s, started %s, took %s.\n\n",
		info.ID, cfg.BaseURL, info.Started.UTC().Format("2006-01-02 15:04:05 MST"), info.Duration.Round(time.Millisecond))

	b.WriteString("| Total | Passed | Flaky | Skipped | Failed |\n|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", len(results.Tests),
		counts[framework.StatusPassed], counts[framework.StatusFlaky],
		counts[framework.StatusSkipped], counts[framework.StatusFailed])

	b.WriteString("## Tests\n\n| Group | Test | Status | Duration | Retries |\n|---|---|---|---|---|\n")
	for _, t := range results.Tests {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			cell(t.TestID.Group()), cell(t.TestID.Name()), statusLabel(t.Status),
			t.Duration.Round(time.Millisecond), t.Retries)
	}

	if len(results.Failures) > 0 {
		b.WriteString("\n## Failures\n")
		for _, f := range results.Failures {
			fmt.Fprintf(&b, "\n### %s\n\n", cell(f.TestID.String()))
			if f.Category != framework.CategoryNone {
				fmt.Fprintf(&b, "Failure type: **%s**\n\n", f.Category)
			}
			b.WriteString("```\n")
			for _, e := range f.Errors {
				b.WriteString(strings.ReplaceAll(e.Error(), "```", "'''"))
				b.WriteString("\n")
			}
			b.WriteString("```\n")
			for _, a := range f.Attachments {
				fmt.Fprintf(&b, "\n- attachment: `%s`\n", a)
			}
		}
	}
	return b.String()
}

func statusLabel(s framework.Status) string {
	if s == framework.StatusFailed {
		return "**failed**"
	}
	return string(s)
}

func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
