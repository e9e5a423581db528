// Package runner executes scenarios one after another, each in its own
// browser session, and records the outcome.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pom_automation/application/pages"
	"pom_automation/application/scenarios"
	"pom_automation/application/testctx"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/browser"
	"pom_automation/infrastructure/config"
	"pom_automation/infrastructure/testdata"

	"github.com/sirupsen/logrus"
)

// Launcher starts a fresh browser session. The runner closes it.
type Launcher func(ctx context.Context) (interfaces.Driver, error)

// BrowserLauncher - launches sessions on the configured engine
func BrowserLauncher(cfg *config.Config, logger logrus.FieldLogger) Launcher {
	opts := browser.FromConfig(cfg)
	return func(ctx context.Context) (interfaces.Driver, error) {
		return browser.Launch(ctx, opts, logger)
	}
}

type Options struct {
	Engine        string
	Browser       string
	Retries       int
	Timeouts      entities.Timeouts
	Sites         map[entities.Site]string
	ScreenshotDir string
	DownloadDir   string
	// ResultsFile receives the JSON report; empty skips writing it
	ResultsFile string
}

// OptionsFromConfig - maps the resolved configuration onto runner options
func OptionsFromConfig(cfg *config.Config) Options {
	sites := make(map[entities.Site]string, len(entities.Sites))
	for _, site := range entities.Sites {
		sites[site] = cfg.Sites.URL(site)
	}
	return Options{
		Engine:        cfg.Browser.Engine,
		Browser:       cfg.Browser.Name,
		Retries:       cfg.Runner.Retries,
		Timeouts:      cfg.Timeouts,
		Sites:         sites,
		ScreenshotDir: cfg.Reports.Screenshots,
		DownloadDir:   cfg.Reports.Downloads,
		ResultsFile:   cfg.Reports.ResultsFile,
	}
}

type Runner struct {
	opts   Options
	launch Launcher
	creds  interfaces.CredentialStore
	data   *testdata.Generator
	logger logrus.FieldLogger
	out    io.Writer
	now    func() time.Time
}

// NewRunner - creates a runner printing one line per scenario to out
func NewRunner(opts Options, launch Launcher, creds interfaces.CredentialStore, logger logrus.FieldLogger, out io.Writer) *Runner {
	return &Runner{
		opts:   opts,
		launch: launch,
		creds:  creds,
		data:   testdata.NewGenerator(),
		logger: logger,
		out:    out,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for timings and screenshot names
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run - executes list sequentially. The report is returned even when the
// run is canceled part way.
func (r *Runner) Run(ctx context.Context, list []scenarios.Scenario) (*entities.RunReport, error) {
	report := &entities.RunReport{
		Engine:    r.opts.Engine,
		Browser:   r.opts.Browser,
		StartedAt: r.now(),
	}
	r.logger.Infof("Running %d scenario(s)", len(list))

	var runErr error
	for _, sc := range list {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("run canceled: %w", ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		res := r.runScenario(ctx, sc)
		report.Add(res)
		r.print(res)
	}
	report.FinishedAt = r.now()

	fmt.Fprintf(r.out, "\n%d passed, %d failed, %d skipped\n", report.Passed, report.Failed, report.Skipped)
	if err := r.writeResults(report); err != nil {
		r.logger.Errorf("Failed to write results: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	return report, runErr
}

// runScenario retries a failing scenario up to the configured count
func (r *Runner) runScenario(ctx context.Context, sc scenarios.Scenario) entities.RunResult {
	start := r.now()
	var res entities.RunResult
	for attempt := 1; attempt <= r.opts.Retries+1; attempt++ {
		if attempt > 1 {
			r.logger.Warnf("Retrying %s (attempt %d)", sc.Name, attempt)
		}
		res = r.attempt(ctx, sc)
		res.Attempts = attempt
		if res.Status != entities.RunStatusFailed || ctx.Err() != nil {
			break
		}
	}
	res.Name = sc.Name
	res.Site = string(sc.Site)
	res.StartedAt = start
	res.Duration = r.now().Sub(start)
	return res
}

func (r *Runner) attempt(ctx context.Context, sc scenarios.Scenario) entities.RunResult {
	log := r.logger.WithField("scenario", sc.Name)

	driver, err := r.launch(ctx)
	if err != nil {
		return entities.RunResult{
			Status: entities.RunStatusFailed,
			Error:  fmt.Sprintf("failed to launch browser: %v", err),
		}
	}
	defer func() {
		if err := driver.Close(); err != nil {
			log.Warnf("Failed to close browser: %v", err)
		}
	}()

	tc := testctx.New(driver, log, r.opts.ScreenshotDir).WithClock(r.now)
	env := &scenarios.Env{
		Ctx:    ctx,
		Driver: driver,
		Pages: pages.Config{
			Driver:        driver,
			Logger:        log,
			Timeouts:      r.opts.Timeouts,
			ScreenshotDir: r.opts.ScreenshotDir,
			DownloadDir:   r.opts.DownloadDir,
			Now:           r.now,
		},
		Sites:       r.opts.Sites,
		Credentials: r.creds,
		Data:        r.data,
		Logger:      log,
		TC:          tc,
	}

	t := newRecorder(log)
	t.run(func() { sc.Run(t, env) })

	res := entities.RunResult{Messages: t.messages}
	switch {
	case t.skipped:
		res.Status = entities.RunStatusSkipped
	case t.failed:
		res.Status = entities.RunStatusFailed
		res.Error = t.failure
		path, err := tc.TakeScreenshot(context.WithoutCancel(ctx), screenshotLabel(sc.Name))
		if err != nil {
			log.Warnf("Failed to capture failure screenshot: %v", err)
		} else {
			res.Screenshot = path
		}
	default:
		res.Status = entities.RunStatusPassed
	}
	return res
}

// screenshotLabel turns "site/name" into a file name
func screenshotLabel(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(name)
}

func (r *Runner) print(res entities.RunResult) {
	mark := map[entities.RunStatus]string{
		entities.RunStatusPassed:  "PASS",
		entities.RunStatusFailed:  "FAIL",
		entities.RunStatusSkipped: "SKIP",
	}[res.Status]
	fmt.Fprintf(r.out, "  %s  %s (%s)\n", mark, res.Name, res.Duration.Round(time.Millisecond))
	if res.Status == entities.RunStatusFailed {
		first, _, _ := strings.Cut(strings.TrimSpace(res.Error), "\n")
		fmt.Fprintf(r.out, "        %s\n", first)
	}
}

func (r *Runner) writeResults(report *entities.RunReport) error {
	if r.opts.ResultsFile == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.opts.ResultsFile), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := os.WriteFile(r.opts.ResultsFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	r.logger.Infof("Results written to %s", r.opts.ResultsFile)
	return nil
}
