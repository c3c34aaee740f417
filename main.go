package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/demos-qa/telerik-demos-tests/browser"
	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/demotests"
	"github.com/demos-qa/telerik-demos-tests/fixtures"
	"github.com/demos-qa/telerik-demos-tests/framework"
	"github.com/demos-qa/telerik-demos-tests/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}

	cfg, err := config.Load(params.configPath, config.IsCI(os.Getenv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}
	params.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}

	data, err := fixtures.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test data error: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	httpClient := &http.Client{Timeout: cfg.Timeouts.Navigation}
	target, err := framework.AwaitTarget(httpClient, cfg.DemosURL(), cfg.Timeouts.Navigation, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Site under test is not reachable: %s\n", err)
		return 1
	}
	mainDebugLogger.Printf("Preflight: %s answered %d (server %q)", target.URL, target.StatusCode, target.Server)

	launcher, err := browser.Launch(cfg, browser.LaunchOptions{
		InstallBrowsers: params.install,
		Logger:          mainDebugLogger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Browser error: %s\n", err)
		return 1
	}
	defer launcher.Close()

	env := &demotests.Environment{
		Config:     cfg,
		Sessions:   launcher,
		Data:       data,
		HTTPClient: httpClient,
	}
	plan := demotests.Plan(env)

	fmt.Println()
	framework.PrintFilterDescription(params.filters, cfg.Browsers)

	fmt.Printf("Running test suite against %s with %d worker(s)\n", cfg.DemosURL(), cfg.Workers)

	var testLogger framework.TestLogger
	if cfg.HasReporter(config.ReporterList) {
		testLogger = &ConsoleTestLogger{
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
			Verbose:              params.verbose,
		}
	}

	info := report.NewRunInfo(time.Now())
	results, err := framework.Run(plan.Tests(), framework.RunOptions{
		Filter:        params.filters.AsFilter,
		Workers:       cfg.Workers,
		Retries:       cfg.Retries,
		Timeout:       cfg.Timeouts.Test,
		ForbidFocused: cfg.ForbidFocused,
	}, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test run error: %s\n", err)
		return 1
	}
	info.Duration = time.Since(info.Started)

	written, err := report.WriteAll(results, cfg, info)
	for _, path := range written {
		fmt.Printf("Wrote report %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report error: %s\n", err)
	}

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}
