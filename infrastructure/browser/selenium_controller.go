package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// quiescenceScript samples the document state and the resource timeline;
// the network counts as idle once both stop changing
const quiescenceScript = `return [document.readyState, performance.getEntriesByType('resource').length];`

type SeleniumController struct {
	wd         selenium.WebDriver
	service    *selenium.Service
	logger     logrus.FieldLogger
	quiescence time.Duration
	marks      atomic.Int64
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	for _, path := range []string{configured, os.Getenv("BROWSER_DRIVER_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set browser.driver_path")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	for _, path := range []string{configured, os.Getenv("CHROME_BINARY_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// NewSeleniumController - starts chromedriver and opens a fresh Chrome session
func NewSeleniumController(ctx context.Context, opts Options, logger logrus.FieldLogger) (*SeleniumController, error) {
	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	port := opts.DriverPort
	if port == 0 {
		port = 9515
	}
	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--disable-notifications",
			"--no-sandbox",
			fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if chromeBinary := findChromeBinary(opts.BinaryPath); chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
		chromeCaps.Path = chromeBinary
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		_ = service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found, set browser.binary_path: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &SeleniumController{
		wd:         wd,
		service:    service,
		logger:     logger,
		quiescence: opts.Quiescence,
	}, nil
}

// script runs a function expression with one argument
func (s *SeleniumController) script(fn string, arg any) (any, error) {
	return s.wd.ExecuteScript("return ("+fn+")(arguments[0]);", []interface{}{arg})
}

// resolve returns plain CSS for sel, marking the element in the page when
// sel carries a has-text filter. ok is false when nothing matches yet.
func (s *SeleniumController) resolve(sel string) (css string, ok bool, err error) {
	if !hasTextFilter(sel) {
		return sel, true, nil
	}
	steps, err := parseQuery(sel)
	if err != nil {
		return "", false, err
	}
	mark := fmt.Sprintf("s%d", s.marks.Add(1))
	res, err := s.script(resolveScript, resolveArg(steps, mark))
	if err != nil {
		return "", false, err
	}
	return refSelector(mark), len(toStrings(res)) > 0, nil
}

// find waits for the first match of sel, optionally until it is displayed
func (s *SeleniumController) find(ctx context.Context, op, sel string, timeout time.Duration, visible bool) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := poll(ctx, timeout, func() (bool, error) {
		css, ok, err := s.resolve(sel)
		if err != nil || !ok {
			return false, err
		}
		elem, err := s.wd.FindElement(selenium.ByCSSSelector, css)
		if err != nil {
			return false, err
		}
		if visible {
			shown, err := elem.IsDisplayed()
			if err != nil || !shown {
				return false, err
			}
		}
		found = elem
		return true, nil
	})
	if err != nil {
		return nil, elementError(ctx, op, sel, err, s.Count)
	}
	return found, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Debugf("Navigating to: %s", url)
	if err := s.wd.SetPageLoadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set page load timeout: %w", err)
	}
	if err := s.wd.Get(url); err != nil {
		return timeoutError("navigate to "+url, err)
	}
	return nil
}

func (s *SeleniumController) Reload(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.wd.SetPageLoadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set page load timeout: %w", err)
	}
	if err := s.wd.Refresh(); err != nil {
		return timeoutError("reload", err)
	}
	return nil
}

// WaitForNetworkIdle - WebDriver has no network events, so this waits for
// the resource timeline to stay unchanged for the quiescence window
func (s *SeleniumController) WaitForNetworkIdle(ctx context.Context, timeout time.Duration) error {
	var (
		lastCount   = -1
		stableSince time.Time
	)
	err := poll(ctx, timeout, func() (bool, error) {
		res, err := s.wd.ExecuteScript(quiescenceScript, nil)
		if err != nil {
			return false, err
		}
		sample, _ := res.([]interface{})
		if len(sample) != 2 {
			return false, fmt.Errorf("unexpected quiescence sample %v", res)
		}
		state, _ := sample[0].(string)
		count, _ := sample[1].(float64)

		now := time.Now()
		if state != "complete" || int(count) != lastCount {
			lastCount = int(count)
			stableSince = now
			return false, nil
		}
		return now.Sub(stableSince) >= s.quiescence, nil
	})
	if err != nil {
		return timeoutError("network idle", err)
	}
	return nil
}

// Click - scrolls the element to the middle of the viewport and clicks it
func (s *SeleniumController) Click(ctx context.Context, selector string, timeout time.Duration) error {
	elem, err := s.find(ctx, "click", selector, timeout, true)
	if err != nil {
		return err
	}
	if _, err := s.wd.ExecuteScript(`arguments[0].scrollIntoView({block: 'center'}); return true;`, []interface{}{elem}); err != nil {
		s.logger.Warnf("Failed to scroll to element: %v", err)
	}
	if err := elem.Click(); err != nil {
		return elementError(ctx, "click", selector, err, s.Count)
	}
	return nil
}

func (s *SeleniumController) Hover(ctx context.Context, selector string, timeout time.Duration) error {
	elem, err := s.find(ctx, "hover", selector, timeout, true)
	if err != nil {
		return err
	}
	if err := elem.MoveTo(0, 0); err != nil {
		return elementError(ctx, "hover", selector, err, s.Count)
	}
	return nil
}

// Fill - clears the input and types value
func (s *SeleniumController) Fill(ctx context.Context, selector, value string, timeout time.Duration) error {
	elem, err := s.find(ctx, "fill", selector, timeout, true)
	if err != nil {
		return err
	}
	if err := elem.Clear(); err != nil {
		return elementError(ctx, "fill", selector, err, s.Count)
	}
	if err := elem.SendKeys(value); err != nil {
		return elementError(ctx, "fill", selector, err, s.Count)
	}
	return nil
}

// SelectOption - clicks the <option> carrying value
func (s *SeleniumController) SelectOption(ctx context.Context, selector, value string, timeout time.Duration) error {
	elem, err := s.find(ctx, "select", selector, timeout, true)
	if err != nil {
		return err
	}
	option, err := elem.FindElement(selenium.ByCSSSelector, fmt.Sprintf("option[value=%q]", value))
	if err != nil {
		return elementError(ctx, "select", selector, fmt.Errorf("no option %q: %w", value, err), s.Count)
	}
	if err := option.Click(); err != nil {
		return elementError(ctx, "select", selector, err, s.Count)
	}
	return nil
}

func (s *SeleniumController) SetChecked(ctx context.Context, selector string, checked bool, timeout time.Duration) error {
	elem, err := s.find(ctx, "check", selector, timeout, true)
	if err != nil {
		return err
	}
	selected, err := elem.IsSelected()
	if err != nil {
		return elementError(ctx, "check", selector, err, s.Count)
	}
	if selected == checked {
		return nil
	}
	if err := elem.Click(); err != nil {
		return elementError(ctx, "check", selector, err, s.Count)
	}
	return nil
}

// TextContent - raw textContent of the first match, hidden or not
func (s *SeleniumController) TextContent(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	elem, err := s.find(ctx, "read text of", selector, timeout, false)
	if err != nil {
		return "", err
	}
	res, err := s.wd.ExecuteScript(`return arguments[0].textContent;`, []interface{}{elem})
	if err != nil {
		return "", elementError(ctx, "read text of", selector, err, s.Count)
	}
	text, _ := res.(string)
	return text, nil
}

func (s *SeleniumController) Texts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	steps, err := parseQuery(selector)
	if err != nil {
		return nil, err
	}
	res, err := s.script(resolveScript, resolveArg(steps, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to read texts of %q: %w", selector, err)
	}
	return toStrings(res), nil
}

func (s *SeleniumController) Attribute(ctx context.Context, selector, name string, timeout time.Duration) (string, error) {
	elem, err := s.find(ctx, "read attribute of", selector, timeout, false)
	if err != nil {
		return "", err
	}
	res, err := s.wd.ExecuteScript(`return arguments[0].getAttribute(arguments[1]);`, []interface{}{elem, name})
	if err != nil {
		return "", elementError(ctx, "read attribute of", selector, err, s.Count)
	}
	value, _ := res.(string)
	return value, nil
}

// Count - matches right now, no waiting
func (s *SeleniumController) Count(ctx context.Context, selector string) (int, error) {
	texts, err := s.Texts(ctx, selector)
	if err != nil {
		return 0, err
	}
	return len(texts), nil
}

func (s *SeleniumController) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := s.find(ctx, "wait for", selector, timeout, true)
	return err
}

func (s *SeleniumController) ScrollIntoView(ctx context.Context, selector string, timeout time.Duration) error {
	elem, err := s.find(ctx, "scroll to", selector, timeout, false)
	if err != nil {
		return err
	}
	if _, err := s.wd.ExecuteScript(`arguments[0].scrollIntoView({block: 'center'}); return true;`, []interface{}{elem}); err != nil {
		return elementError(ctx, "scroll to", selector, err, s.Count)
	}
	return nil
}

// Evaluate - runs a function expression with arg
func (s *SeleniumController) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.script(script, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate script: %w", err)
	}
	return res, nil
}

// Screenshot - WebDriver only captures the viewport, fullPage is ignored
func (s *SeleniumController) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.wd.Screenshot()
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// URL - returns current page URL
func (s *SeleniumController) URL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Title - returns current page title
func (s *SeleniumController) Title(ctx context.Context) (string, error) {
	return s.wd.Title()
}

// Download - not available through WebDriver
func (s *SeleniumController) Download(ctx context.Context, selector, dir string, timeout time.Duration) (string, error) {
	return "", fmt.Errorf("selenium download from %q: %w", selector, errors.ErrUnsupported)
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumController) Close() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return errors.Join(errs...)
}

// Ensure SeleniumController implements Driver interface
var _ interfaces.Driver = (*SeleniumController)(nil)
