package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pom_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type playwrightController struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page
	pages      []playwright.Page
	pagesMutex sync.Mutex
	logger     logrus.FieldLogger
}

// NewPlaywrightController - starts playwright and opens one page
func NewPlaywrightController(ctx context.Context, opts Options, logger logrus.FieldLogger) (interfaces.Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch opts.Browser {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launch.SlowMo = playwright.Float(opts.SlowMo)
	}
	if opts.Browser == "chromium" {
		launch.Args = []string{
			"--disable-popup-blocking",
			"--disable-dev-shm-usage",
			"--disable-notifications",
		}
	}

	browser, err := browserType.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
		AcceptDownloads:   playwright.Bool(true),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	bctx.SetDefaultTimeout(ms(opts.DefaultTimeout))

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	c := &playwrightController{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
		pages:   []playwright.Page{page},
		logger:  logger,
	}
	c.track(page)

	// pages opened by the site (target=_blank, window.open) become current
	bctx.OnPage(func(newPage playwright.Page) {
		c.pagesMutex.Lock()
		c.pages = append(c.pages, newPage)
		c.page = newPage
		c.pagesMutex.Unlock()
		c.track(newPage)
		c.logger.Debugf("Switched to new tab: %s", newPage.URL())
	})

	logger.Infof("Playwright %s started (headless=%t)", opts.Browser, opts.Headless)
	return c, nil
}

// track accepts dialogs on p and falls back to the first tab when it closes
func (c *playwrightController) track(p playwright.Page) {
	p.OnDialog(func(dialog playwright.Dialog) {
		c.logger.Debugf("Accepting %s dialog: %s", dialog.Type(), dialog.Message())
		_ = dialog.Accept()
	})
	p.OnClose(func(closed playwright.Page) {
		c.pagesMutex.Lock()
		defer c.pagesMutex.Unlock()

		for i, open := range c.pages {
			if open == closed {
				c.pages = append(c.pages[:i], c.pages[i+1:]...)
				break
			}
		}
		if c.page == closed && len(c.pages) > 0 {
			c.page = c.pages[0]
		}
	})
}

func (c *playwrightController) current() playwright.Page {
	c.pagesMutex.Lock()
	defer c.pagesMutex.Unlock()
	return c.page
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

// Navigate - loads url and waits for the load event
func (c *playwrightController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.current().Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(ms(timeout)),
	})
	if err != nil {
		return timeoutError("navigate to "+url, err)
	}
	return nil
}

func (c *playwrightController) Reload(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.current().Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(ms(timeout)),
	})
	if err != nil {
		return timeoutError("reload", err)
	}
	return nil
}

// WaitForNetworkIdle - playwright's own networkidle state (500ms without requests)
func (c *playwrightController) WaitForNetworkIdle(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := c.current().WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return timeoutError("network idle", err)
	}
	return nil
}

// visible returns the first match once it is visible
func (c *playwrightController) visible(ctx context.Context, op, selector string, timeout time.Duration) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := c.current().Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return nil, elementError(ctx, op, selector, fmt.Errorf("element not found or not visible: %w", err), c.Count)
	}
	return locator, nil
}

// attached returns the first match once it is in the DOM
func (c *playwrightController) attached(ctx context.Context, op, selector string, timeout time.Duration) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := c.current().Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return nil, elementError(ctx, op, selector, err, c.Count)
	}
	return locator, nil
}

// Click - clicks the first visible match
func (c *playwrightController) Click(ctx context.Context, selector string, timeout time.Duration) error {
	locator, err := c.visible(ctx, "click", selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(ms(timeout))}); err != nil {
		return elementError(ctx, "click", selector, err, c.Count)
	}
	return nil
}

func (c *playwrightController) Hover(ctx context.Context, selector string, timeout time.Duration) error {
	locator, err := c.visible(ctx, "hover", selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Hover(playwright.LocatorHoverOptions{Timeout: playwright.Float(ms(timeout))}); err != nil {
		return elementError(ctx, "hover", selector, err, c.Count)
	}
	return nil
}

// Fill - replaces the input value
func (c *playwrightController) Fill(ctx context.Context, selector, value string, timeout time.Duration) error {
	locator, err := c.visible(ctx, "fill", selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Fill(value, playwright.LocatorFillOptions{Timeout: playwright.Float(ms(timeout))}); err != nil {
		return elementError(ctx, "fill", selector, err, c.Count)
	}
	return nil
}

func (c *playwrightController) SelectOption(ctx context.Context, selector, value string, timeout time.Duration) error {
	locator, err := c.visible(ctx, "select", selector, timeout)
	if err != nil {
		return err
	}
	_, err = locator.SelectOption(
		playwright.SelectOptionValues{Values: playwright.StringSlice(value)},
		playwright.LocatorSelectOptionOptions{Timeout: playwright.Float(ms(timeout))},
	)
	if err != nil {
		return elementError(ctx, "select", selector, err, c.Count)
	}
	return nil
}

func (c *playwrightController) SetChecked(ctx context.Context, selector string, checked bool, timeout time.Duration) error {
	locator, err := c.visible(ctx, "check", selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.SetChecked(checked, playwright.LocatorSetCheckedOptions{Timeout: playwright.Float(ms(timeout))}); err != nil {
		return elementError(ctx, "check", selector, err, c.Count)
	}
	return nil
}

// TextContent - raw textContent of the first match
func (c *playwrightController) TextContent(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	locator, err := c.attached(ctx, "read text of", selector, timeout)
	if err != nil {
		return "", err
	}
	text, err := locator.TextContent(playwright.LocatorTextContentOptions{Timeout: playwright.Float(ms(timeout))})
	if err != nil {
		return "", elementError(ctx, "read text of", selector, err, c.Count)
	}
	return text, nil
}

func (c *playwrightController) Texts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, err := c.current().Locator(selector).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to read texts of %q: %w", selector, err)
	}
	return texts, nil
}

func (c *playwrightController) Attribute(ctx context.Context, selector, name string, timeout time.Duration) (string, error) {
	locator, err := c.attached(ctx, "read attribute of", selector, timeout)
	if err != nil {
		return "", err
	}
	value, err := locator.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(ms(timeout))})
	if err != nil {
		return "", elementError(ctx, "read attribute of", selector, err, c.Count)
	}
	return value, nil
}

// Count - matches right now, no waiting
func (c *playwrightController) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.current().Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", selector, err)
	}
	return n, nil
}

func (c *playwrightController) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := c.visible(ctx, "wait for", selector, timeout)
	return err
}

func (c *playwrightController) ScrollIntoView(ctx context.Context, selector string, timeout time.Duration) error {
	locator, err := c.attached(ctx, "scroll to", selector, timeout)
	if err != nil {
		return err
	}
	err = locator.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: playwright.Float(ms(timeout))})
	if err != nil {
		return elementError(ctx, "scroll to", selector, err, c.Count)
	}
	return nil
}

// Evaluate - script is a function expression; playwright calls it with arg
func (c *playwrightController) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := c.current().Evaluate(script, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate script: %w", err)
	}
	return result, nil
}

// Screenshot - takes a screenshot of the current page
func (c *playwrightController) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	_, err := c.current().Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	return err
}

func (c *playwrightController) URL(ctx context.Context) (string, error) {
	return c.current().URL(), ctx.Err()
}

func (c *playwrightController) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.current().Title()
}

// Download - clicks selector and saves the file it triggers under dir
func (c *playwrightController) Download(ctx context.Context, selector, dir string, timeout time.Duration) (string, error) {
	locator, err := c.visible(ctx, "download from", selector, timeout)
	if err != nil {
		return "", err
	}
	download, err := c.current().ExpectDownload(func() error {
		return locator.Click()
	}, playwright.PageExpectDownloadOptions{Timeout: playwright.Float(ms(timeout))})
	if err != nil {
		return "", timeoutError("download from "+selector, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, download.SuggestedFilename())
	if err := download.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save download: %w", err)
	}
	c.logger.Infof("Downloaded %s", path)
	return path, nil
}

// Close - closes context, browser and the playwright driver
func (c *playwrightController) Close() error {
	var errs []error

	if c.context != nil {
		if err := c.context.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		c.context = nil
	}
	if c.browser != nil {
		if err := c.browser.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		c.browser = nil
	}
	if c.pw != nil {
		if err := c.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		c.pw = nil
	}

	return errors.Join(errs...)
}
