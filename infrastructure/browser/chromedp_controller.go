package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"pom_automation/domain/interfaces"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// selectScript sets a <select> value the way a user change would
const selectScript = `(q) => {
	const el = document.querySelector(q.css);
	if (!el || !Array.from(el.options).some((o) => o.value === q.value)) return false;
	el.value = q.value;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
}`

// ChromedpController drives Chrome over the DevTools protocol directly
type ChromedpController struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	network     *networkTracker
	logger      logrus.FieldLogger
	quiescence  time.Duration
	marks       atomic.Int64
}

// NewChromedpController - launches Chrome and attaches to its first tab
func NewChromedpController(ctx context.Context, opts Options, logger logrus.FieldLogger) (*ChromedpController, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-notifications", true),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
	)
	if binary := findChromeBinary(opts.BinaryPath); binary != "" {
		logger.Infof("Using Chrome binary at: %s", binary)
		allocOpts = append(allocOpts, chromedp.ExecPath(binary))
	}

	// the session outlives ctx; Close ends it
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Debugf))

	c := &ChromedpController{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		network:     newNetworkTracker(time.Now),
		logger:      logger,
		quiescence:  opts.Quiescence,
	}
	chromedp.ListenTarget(browserCtx, c.network.handle)

	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	logger.Infof("Chrome started over CDP (headless=%t)", opts.Headless)
	return c, nil
}

// run executes actions under timeout, also stopping when ctx ends
func (c *ChromedpController) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// eval calls a function expression with arg encoded as JSON
func (c *ChromedpController) eval(ctx context.Context, timeout time.Duration, script string, arg any) (any, error) {
	encoded, err := json.Marshal(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode script argument: %w", err)
	}
	// undefined cannot be decoded
	expr := fmt.Sprintf("(() => { const r = (%s)(%s); return r === undefined ? null : r; })()", script, encoded)

	var res interface{}
	if err := c.run(ctx, timeout, chromedp.Evaluate(expr, &res)); err != nil {
		return nil, err
	}
	return res, nil
}

// target resolves sel to plain CSS, waiting for a has-text match when needed.
// It returns the time budget left for the action itself.
func (c *ChromedpController) target(ctx context.Context, op, sel string, timeout time.Duration) (string, time.Duration, error) {
	if !hasTextFilter(sel) {
		return sel, timeout, nil
	}
	steps, err := parseQuery(sel)
	if err != nil {
		return "", 0, err
	}

	start := time.Now()
	mark := fmt.Sprintf("c%d", c.marks.Add(1))
	err = poll(ctx, timeout, func() (bool, error) {
		res, err := c.eval(ctx, timeout, resolveScript, resolveArg(steps, mark))
		if err != nil {
			return false, err
		}
		return len(toStrings(res)) > 0, nil
	})
	if err != nil {
		return "", 0, elementError(ctx, op, sel, err, c.Count)
	}
	return refSelector(mark), timeout - time.Since(start), nil
}

// act resolves sel and runs the actions built for its CSS
func (c *ChromedpController) act(ctx context.Context, op, sel string, timeout time.Duration, build func(css string) []chromedp.Action) error {
	css, left, err := c.target(ctx, op, sel, timeout)
	if err != nil {
		return err
	}
	if err := c.run(ctx, left, build(css)...); err != nil {
		return elementError(ctx, op, sel, err, c.Count)
	}
	return nil
}

func (c *ChromedpController) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.Navigate(url)); err != nil {
		return timeoutError("navigate to "+url, err)
	}
	return nil
}

func (c *ChromedpController) Reload(ctx context.Context, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.Reload()); err != nil {
		return timeoutError("reload", err)
	}
	return nil
}

// WaitForNetworkIdle - no request in flight for the quiescence window
func (c *ChromedpController) WaitForNetworkIdle(ctx context.Context, timeout time.Duration) error {
	if err := c.network.wait(ctx, timeout, c.quiescence); err != nil {
		return timeoutError("network idle", err)
	}
	return nil
}

func (c *ChromedpController) Click(ctx context.Context, selector string, timeout time.Duration) error {
	return c.act(ctx, "click", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{chromedp.Click(css, chromedp.ByQuery, chromedp.NodeVisible)}
	})
}

// Hover - moves the mouse to the centre of the element's content box
func (c *ChromedpController) Hover(ctx context.Context, selector string, timeout time.Duration) error {
	return c.act(ctx, "hover", selector, timeout, func(css string) []chromedp.Action {
		var nodes []*cdp.Node
		return []chromedp.Action{
			chromedp.ScrollIntoView(css, chromedp.ByQuery),
			chromedp.Nodes(css, &nodes, chromedp.ByQuery, chromedp.NodeVisible),
			chromedp.ActionFunc(func(ctx context.Context) error {
				box, err := dom.GetBoxModel().WithNodeID(nodes[0].NodeID).Do(ctx)
				if err != nil {
					return err
				}
				var x, y float64
				for i := 0; i+1 < len(box.Content); i += 2 {
					x += box.Content[i]
					y += box.Content[i+1]
				}
				points := float64(len(box.Content) / 2)
				return input.DispatchMouseEvent(input.MouseMoved, x/points, y/points).Do(ctx)
			}),
		}
	})
}

func (c *ChromedpController) Fill(ctx context.Context, selector, value string, timeout time.Duration) error {
	return c.act(ctx, "fill", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{
			chromedp.WaitVisible(css, chromedp.ByQuery),
			chromedp.Clear(css, chromedp.ByQuery),
			chromedp.SendKeys(css, value, chromedp.ByQuery),
		}
	})
}

func (c *ChromedpController) SelectOption(ctx context.Context, selector, value string, timeout time.Duration) error {
	css, left, err := c.target(ctx, "select", selector, timeout)
	if err != nil {
		return err
	}
	if err := c.run(ctx, left, chromedp.WaitVisible(css, chromedp.ByQuery)); err != nil {
		return elementError(ctx, "select", selector, err, c.Count)
	}
	res, err := c.eval(ctx, left, selectScript, map[string]string{"css": css, "value": value})
	if err != nil {
		return elementError(ctx, "select", selector, err, c.Count)
	}
	if ok, _ := res.(bool); !ok {
		return elementError(ctx, "select", selector, fmt.Errorf("no option %q", value), c.Count)
	}
	return nil
}

func (c *ChromedpController) SetChecked(ctx context.Context, selector string, checked bool, timeout time.Duration) error {
	css, left, err := c.target(ctx, "check", selector, timeout)
	if err != nil {
		return err
	}
	var current bool
	err = c.run(ctx, left,
		chromedp.WaitVisible(css, chromedp.ByQuery),
		chromedp.JavascriptAttribute(css, "checked", &current, chromedp.ByQuery),
	)
	if err != nil {
		return elementError(ctx, "check", selector, err, c.Count)
	}
	if current == checked {
		return nil
	}
	if err := c.run(ctx, left, chromedp.Click(css, chromedp.ByQuery)); err != nil {
		return elementError(ctx, "check", selector, err, c.Count)
	}
	return nil
}

func (c *ChromedpController) TextContent(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	var text string
	err := c.act(ctx, "read text of", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{chromedp.TextContent(css, &text, chromedp.ByQuery)}
	})
	return text, err
}

// Texts - text content of every current match
func (c *ChromedpController) Texts(ctx context.Context, selector string) ([]string, error) {
	steps, err := parseQuery(selector)
	if err != nil {
		return nil, err
	}
	res, err := c.eval(ctx, 10*time.Second, resolveScript, resolveArg(steps, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to read texts of %q: %w", selector, err)
	}
	return toStrings(res), nil
}

func (c *ChromedpController) Attribute(ctx context.Context, selector, name string, timeout time.Duration) (string, error) {
	var (
		value string
		ok    bool
	)
	err := c.act(ctx, "read attribute of", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{chromedp.AttributeValue(css, name, &value, &ok, chromedp.ByQuery)}
	})
	return value, err
}

func (c *ChromedpController) Count(ctx context.Context, selector string) (int, error) {
	texts, err := c.Texts(ctx, selector)
	if err != nil {
		return 0, err
	}
	return len(texts), nil
}

func (c *ChromedpController) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return c.act(ctx, "wait for", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{chromedp.WaitVisible(css, chromedp.ByQuery)}
	})
}

func (c *ChromedpController) ScrollIntoView(ctx context.Context, selector string, timeout time.Duration) error {
	return c.act(ctx, "scroll to", selector, timeout, func(css string) []chromedp.Action {
		return []chromedp.Action{chromedp.ScrollIntoView(css, chromedp.ByQuery)}
	})
}

func (c *ChromedpController) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	res, err := c.eval(ctx, 30*time.Second, script, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate script: %w", err)
	}
	return res, nil
}

func (c *ChromedpController) Screenshot(ctx context.Context, path string, fullPage bool) error {
	var (
		buf    []byte
		action chromedp.Action = chromedp.CaptureScreenshot(&buf)
	)
	if fullPage {
		action = chromedp.FullScreenshot(&buf, 90)
	}
	if err := c.run(ctx, 30*time.Second, action); err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}

func (c *ChromedpController) URL(ctx context.Context) (string, error) {
	var url string
	err := c.run(ctx, 10*time.Second, chromedp.Location(&url))
	return url, err
}

func (c *ChromedpController) Title(ctx context.Context) (string, error) {
	var title string
	err := c.run(ctx, 10*time.Second, chromedp.Title(&title))
	return title, err
}

// Download - not wired for CDP sessions
func (c *ChromedpController) Download(ctx context.Context, selector, dir string, timeout time.Duration) (string, error) {
	return "", fmt.Errorf("chromedp download from %q: %w", selector, errors.ErrUnsupported)
}

// Close - shuts the browser down and releases the allocator
func (c *ChromedpController) Close() error {
	err := chromedp.Cancel(c.ctx)
	c.cancel()
	c.allocCancel()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to close chrome: %w", err)
	}
	return nil
}

var _ interfaces.Driver = (*ChromedpController)(nil)
