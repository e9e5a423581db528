// Package browser implements interfaces.Driver on top of three automation
// engines: playwright (default), selenium/chromedriver and chromedp.
package browser

import (
	"context"
	"fmt"
	"time"

	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// Options describe one browser session
type Options struct {
	Engine         string
	Browser        string
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	SlowMo         float64
	DriverPath     string
	BinaryPath     string
	DriverPort     int

	// DefaultTimeout applies to engine calls made without an explicit budget
	DefaultTimeout time.Duration
	// Quiescence is how long the network must stay quiet to count as idle
	Quiescence time.Duration
}

// FromConfig - maps the resolved configuration onto session options
func FromConfig(cfg *config.Config) Options {
	return Options{
		Engine:         cfg.Browser.Engine,
		Browser:        cfg.Browser.Name,
		Headless:       cfg.Browser.Headless,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		SlowMo:         cfg.Browser.SlowMo,
		DriverPath:     cfg.Browser.DriverPath,
		BinaryPath:     cfg.Browser.BinaryPath,
		DriverPort:     cfg.Browser.DriverPort,
		DefaultTimeout: cfg.Timeouts.Global,
		Quiescence:     cfg.Timeouts.Quiescence,
	}
}

// Launch - starts a session on the configured engine. The caller owns the
// returned driver and must Close it.
func Launch(ctx context.Context, opts Options, logger logrus.FieldLogger) (interfaces.Driver, error) {
	if opts.Browser == "" {
		opts.Browser = "chromium"
	}
	if opts.ViewportWidth <= 0 || opts.ViewportHeight <= 0 {
		opts.ViewportWidth, opts.ViewportHeight = 1280, 720
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 60 * time.Second
	}
	if opts.Quiescence <= 0 {
		opts.Quiescence = 500 * time.Millisecond
	}

	log := logger.WithField("engine", opts.Engine)
	switch opts.Engine {
	case "", config.EnginePlaywright:
		return NewPlaywrightController(ctx, opts, log)
	case config.EngineSelenium:
		driver, err := NewSeleniumController(ctx, opts, log)
		if err != nil {
			return nil, err
		}
		return driver, nil
	case config.EngineChromedp:
		driver, err := NewChromedpController(ctx, opts, log)
		if err != nil {
			return nil, err
		}
		return driver, nil
	}
	return nil, fmt.Errorf("unknown browser engine %q", opts.Engine)
}
