// Package pages holds the page-object layer. Base implements the shared
// element interactions; the site packages compose it with fixed selector
// tables.
package pages

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultScreenshotDir receives failure screenshots when none is configured
const DefaultScreenshotDir = "reports/screenshots"

// Config is what every page constructor needs. The driver is shared and
// owned by whoever launched it.
type Config struct {
	Driver        interfaces.Driver
	Logger        logrus.FieldLogger
	Timeouts      entities.Timeouts
	ScreenshotDir string
	DownloadDir   string
	Now           func() time.Time
}

// Base - element interactions over a Driver
type Base struct {
	driver        interfaces.Driver
	logger        logrus.FieldLogger
	timeouts      entities.Timeouts
	screenshotDir string
	downloadDir   string
	now           func() time.Time
}

// NewBase - creates the interaction layer for the page called name
func NewBase(cfg Config, name string) *Base {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Timeouts == (entities.Timeouts{}) {
		cfg.Timeouts = entities.DefaultTimeouts()
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = DefaultScreenshotDir
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Base{
		driver:        cfg.Driver,
		logger:        cfg.Logger.WithField("page", name),
		timeouts:      cfg.Timeouts,
		screenshotDir: cfg.ScreenshotDir,
		downloadDir:   cfg.DownloadDir,
		now:           cfg.Now,
	}
}

func (b *Base) Timeouts() entities.Timeouts {
	return b.timeouts
}

func (b *Base) Logger() logrus.FieldLogger {
	return b.logger
}

// Navigate - loads url
func (b *Base) Navigate(ctx context.Context, url string) error {
	b.logger.Infof("Navigating to %s", url)
	return b.driver.Navigate(ctx, url, b.timeouts.Navigation)
}

func (b *Base) Reload(ctx context.Context) error {
	return b.driver.Reload(ctx, b.timeouts.Navigation)
}

// WaitForPageLoad - waits until the network has gone quiet
func (b *Base) WaitForPageLoad(ctx context.Context) error {
	return b.driver.WaitForNetworkIdle(ctx, b.timeouts.Navigation)
}

func (b *Base) Click(ctx context.Context, sel entities.Selector) error {
	return b.driver.Click(ctx, sel.String(), b.timeouts.Action)
}

// ClickAndWait - clicks and waits for the resulting load to settle
func (b *Base) ClickAndWait(ctx context.Context, sel entities.Selector) error {
	b.logger.Infof("Clicking on element: %s", sel)
	if err := b.driver.Click(ctx, sel.String(), b.timeouts.Action); err != nil {
		return err
	}
	return b.WaitForPageLoad(ctx)
}

func (b *Base) Hover(ctx context.Context, sel entities.Selector) error {
	return b.driver.Hover(ctx, sel.String(), b.timeouts.Action)
}

// FillInput - replaces the input's value
func (b *Base) FillInput(ctx context.Context, sel entities.Selector, value string) error {
	b.logger.Infof("Filling input %s with value: %s", sel, value)
	return b.driver.Fill(ctx, sel.String(), value, b.timeouts.Action)
}

func (b *Base) SelectOption(ctx context.Context, sel entities.Selector, value string) error {
	b.logger.Infof("Selecting option %s from dropdown %s", value, sel)
	return b.driver.SelectOption(ctx, sel.String(), value, b.timeouts.Action)
}

func (b *Base) SetCheckbox(ctx context.Context, sel entities.Selector, checked bool) error {
	state := "unchecked"
	if checked {
		state = "checked"
	}
	b.logger.Infof("Setting checkbox %s to %s", sel, state)
	return b.driver.SetChecked(ctx, sel.String(), checked, b.timeouts.Action)
}

func (b *Base) ScrollToElement(ctx context.Context, sel entities.Selector) error {
	b.logger.Infof("Scrolling to element: %s", sel)
	return b.driver.ScrollIntoView(ctx, sel.String(), b.timeouts.Element)
}

// GetText - trimmed text of the first match; fails when nothing matches
func (b *Base) GetText(ctx context.Context, sel entities.Selector) (string, error) {
	n, err := b.driver.Count(ctx, sel.String())
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %q", entities.ErrElementNotFound, sel)
	}
	text, err := b.driver.TextContent(ctx, sel.String(), b.timeouts.Element)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Texts - trimmed text of every match
func (b *Base) Texts(ctx context.Context, sel entities.Selector) ([]string, error) {
	texts, err := b.driver.Texts(ctx, sel.String())
	if err != nil {
		return nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

func (b *Base) Attribute(ctx context.Context, sel entities.Selector, name string) (string, error) {
	return b.driver.Attribute(ctx, sel.String(), name, b.timeouts.Element)
}

func (b *Base) Count(ctx context.Context, sel entities.Selector) (int, error) {
	return b.driver.Count(ctx, sel.String())
}

// IsElementVisible - true when sel becomes visible within timeout
func (b *Base) IsElementVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = b.timeouts.Element
	}
	return b.driver.WaitVisible(ctx, sel.String(), timeout) == nil
}

func (b *Base) WaitForElementVisible(ctx context.Context, sel entities.Selector, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = b.timeouts.Visible
	}
	return b.driver.WaitVisible(ctx, sel.String(), timeout)
}

func (b *Base) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	return b.driver.Evaluate(ctx, script, arg)
}

// Download - saves the file sel triggers under dir (the configured
// download directory when dir is empty)
func (b *Base) Download(ctx context.Context, sel entities.Selector, dir string) (string, error) {
	if dir == "" {
		dir = b.downloadDir
	}
	b.logger.Infof("Downloading from %s into %s", sel, dir)
	return b.driver.Download(ctx, sel.String(), dir, b.timeouts.Global)
}

// SafeExecute - runs fn; on failure logs it, saves a full-page screenshot
// and returns the error untouched
func (b *Base) SafeExecute(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	b.logger.Errorf("%s: %v", label, err)

	path := filepath.Join(b.screenshotDir, fmt.Sprintf("error-%d.png", b.now().UnixMilli()))
	if shotErr := b.driver.Screenshot(context.WithoutCancel(ctx), path, true); shotErr != nil {
		b.logger.Warnf("Failed to capture error screenshot: %v", shotErr)
	} else {
		b.logger.Infof("Error screenshot saved to %s", path)
	}
	return err
}

// SafeExecuteValue - SafeExecute for functions that return a value
func SafeExecuteValue[T any](ctx context.Context, p interfaces.ElementInteractions, label string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.SafeExecute(ctx, label, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

func (b *Base) GetCurrentURL(ctx context.Context) (string, error) {
	return b.driver.URL(ctx)
}

func (b *Base) GetPageTitle(ctx context.Context) (string, error) {
	return b.driver.Title(ctx)
}

// Pause - sleeps for d unless ctx ends first
func Pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ interfaces.ElementInteractions = (*Base)(nil)
