// Command gowebtest runs a smoke suite against a target application: the
// login journey through the browser layer plus an API health check, with
// outcomes recorded to the run database. With no -base-url it starts the
// bundled demo app in-process and runs against that.
package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"time"

	"github.com/atheor/gowebtest/internal/apiclient"
	"github.com/atheor/gowebtest/internal/assert"
	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/cli"
	"github.com/atheor/gowebtest/internal/config"
	"github.com/atheor/gowebtest/internal/demoapp"
	"github.com/atheor/gowebtest/internal/element"
	"github.com/atheor/gowebtest/internal/logging"
	"github.com/atheor/gowebtest/internal/pages"
	"github.com/atheor/gowebtest/internal/report"
	"github.com/atheor/gowebtest/internal/workflows"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		return err
	}

	logger := logging.NewStdoutLogger("gowebtest")

	var provider *config.Provider
	if args.ConfigPath != "" {
		provider, err = config.Load(args.ConfigPath)
	} else {
		provider, err = config.Default()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	baseURL := args.BaseURL
	if baseURL == "" {
		// Only honor base.url when it was explicitly configured; the
		// accessor's default points at a server nobody started.
		baseURL = provider.Get("base.url", "")
	}
	if baseURL == "" {
		// No target given: run against the bundled demo app.
		app := demoapp.New(demoapp.DefaultConfig(), logger)
		srv := httptest.NewServer(app)
		defer srv.Close()
		baseURL = srv.URL
		logger.Info("started bundled demo app", logging.Field{Key: "url", Value: baseURL})
	}

	browserCfg := browser.ConfigFromProvider(provider)
	if args.Backend != "" {
		browserCfg.Backend = args.Backend
	}
	manager := browser.NewManager(browserCfg, logger)
	defer manager.QuitAll()

	recorder, err := report.NewRecorder(provider.ReportDBPath(), logger)
	if err != nil {
		return fmt.Errorf("opening run recorder: %w", err)
	}
	defer recorder.Close()

	ctx := context.Background()
	runID, err := recorder.StartRun(ctx, args.Environment)
	if err != nil {
		return err
	}

	session, err := manager.Get("smoke")
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	page := pages.NewPage(session, baseURL, element.WaitsFromProvider(provider), logger)

	runCheck(ctx, recorder, runID, session, provider, logger, "login_journey", func() error {
		return workflows.NewLoginWorkflow(page).Run(ctx, demoapp.DemoUsername, demoapp.DemoPassword)
	})

	apiCfg := apiclient.ConfigFromProvider(provider)
	if provider.Get("api.base.url", "") == "" {
		apiCfg.BaseURL = baseURL
	}
	api := apiclient.NewClient(apiCfg, logger, nil)

	runCheck(ctx, recorder, runID, session, provider, logger, "api_status", func() error {
		resp, err := api.Get(ctx, "/api/status")
		if err != nil {
			return err
		}
		if !resp.IsSuccessful() {
			return fmt.Errorf("status endpoint returned %s", resp.Status)
		}
		return assert.JSONEqual(`{"status": "available"}`, resp.Body)
	})

	if err := recorder.FinishRun(ctx, runID); err != nil {
		return err
	}

	summary, err := recorder.Summary(ctx, runID)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s: %d passed, %d failed\n", runID,
		summary[report.StatusPassed], summary[report.StatusFailed])
	if summary[report.StatusFailed] > 0 {
		return fmt.Errorf("%d check(s) failed", summary[report.StatusFailed])
	}
	return nil
}

// runCheck executes one named check, capturing a screenshot on failure
// when the backend supports it, and records the outcome.
func runCheck(ctx context.Context, recorder *report.Recorder, runID string,
	session browser.Session, provider *config.Provider, logger logging.Logger,
	name string, fn func() error) {

	start := time.Now()
	result := report.Result{Name: name, Status: report.StatusPassed}

	if err := fn(); err != nil {
		result.Status = report.StatusFailed
		result.Error = err.Error()
		logger.Error("check failed",
			logging.Field{Key: "name", Value: name},
			logging.Field{Key: "error", Value: err.Error()})

		if provider.ScreenshotOnFailure() {
			if path, shotErr := report.SaveScreenshot(ctx, session, provider.ScreenshotDir(), name, logger); shotErr == nil {
				result.Screenshot = path
			} else {
				logger.Warn("screenshot not captured",
					logging.Field{Key: "name", Value: name},
					logging.Field{Key: "error", Value: shotErr.Error()})
			}
		}
	}

	result.Duration = time.Since(start)
	if err := recorder.Record(ctx, runID, result); err != nil {
		logger.Error("recording result", logging.Field{Key: "error", Value: err.Error()})
	}
}
