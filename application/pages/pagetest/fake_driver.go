// Package pagetest provides an in-memory Driver for page-object tests.
package pagetest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// Element is one fake DOM node
type Element struct {
	Text    string
	Hidden  bool
	Attrs   map[string]string
	Value   string
	Checked bool
	// Options lists the values a <select> accepts; nil accepts anything
	Options []string
}

// Call is one recorded driver operation
type Call struct {
	Op       string
	Selector string
	Value    string
}

// Hook runs after a successful operation. It may change the fake.
type Hook func(d *FakeDriver)

// FakeDriver resolves selectors by exact string match against its table.
// Waits never block: a missing or hidden element fails immediately.
type FakeDriver struct {
	mu        sync.Mutex
	elements  map[string][]*Element
	errs      map[string]error
	hooks     map[string][]Hook
	calls     []Call
	url       string
	title     string
	evaluate  func(script string, arg any) (any, error)
	download  string
	closed    bool
	ShotPaths []string
}

func New() *FakeDriver {
	return &FakeDriver{
		elements: make(map[string][]*Element),
		errs:     make(map[string]error),
		hooks:    make(map[string][]Hook),
	}
}

func key(op, sel string) string {
	return op + " " + sel
}

// Set replaces the matches of sel
func (d *FakeDriver) Set(sel entities.Selector, els ...*Element) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(els) == 0 {
		delete(d.elements, sel.String())
		return d
	}
	d.elements[sel.String()] = els
	return d
}

// SetTexts makes sel match one visible element per text
func (d *FakeDriver) SetTexts(sel entities.Selector, texts ...string) *FakeDriver {
	els := make([]*Element, len(texts))
	for i, text := range texts {
		els[i] = &Element{Text: text}
	}
	return d.Set(sel, els...)
}

// Remove makes sel match nothing
func (d *FakeDriver) Remove(sel entities.Selector) *FakeDriver {
	return d.Set(sel)
}

// Element returns the first match of sel, or nil
func (d *FakeDriver) Element(sel entities.Selector) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if els := d.elements[sel.String()]; len(els) > 0 {
		return els[0]
	}
	return nil
}

// Fail makes op on sel return err; sel "" fails op for every selector
func (d *FakeDriver) Fail(op string, sel entities.Selector, err error) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs[key(op, sel.String())] = err
	return d
}

// On registers fn to run after op succeeds on sel (or url for navigate)
func (d *FakeDriver) On(op string, sel entities.Selector, fn Hook) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks[key(op, sel.String())] = append(d.hooks[key(op, sel.String())], fn)
	return d
}

// SetPage sets what URL and Title report
func (d *FakeDriver) SetPage(url, title string) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url, d.title = url, title
	return d
}

// OnEvaluate installs the Evaluate implementation
func (d *FakeDriver) OnEvaluate(fn func(script string, arg any) (any, error)) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.evaluate = fn
	return d
}

// SetDownload sets the path Download reports
func (d *FakeDriver) SetDownload(path string) *FakeDriver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.download = path
	return d
}

// Calls returns the recorded operations
func (d *FakeDriver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Called counts op calls on sel
func (d *FakeDriver) Called(op string, sel entities.Selector) int {
	n := 0
	for _, c := range d.Calls() {
		if c.Op == op && c.Selector == sel.String() {
			n++
		}
	}
	return n
}

func (d *FakeDriver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// begin records the call and returns the injected error, if any
func (d *FakeDriver) begin(ctx context.Context, op, sel, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: op, Selector: sel, Value: value})
	if err, ok := d.errs[key(op, sel)]; ok {
		return err
	}
	if err, ok := d.errs[key(op, "")]; ok {
		return err
	}
	return nil
}

// done runs the hooks for op on sel
func (d *FakeDriver) done(op, sel string) {
	d.mu.Lock()
	hooks := append([]Hook(nil), d.hooks[key(op, sel)]...)
	d.mu.Unlock()
	for _, h := range hooks {
		h(d)
	}
}

// first returns the first match, requiring it visible when asked
func (d *FakeDriver) first(op, sel string, visible bool) (*Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	els := d.elements[sel]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s %q", entities.ErrElementNotFound, op, sel)
	}
	if visible && els[0].Hidden {
		return nil, fmt.Errorf("%w: %s %q: hidden", entities.ErrElementNotInteractable, op, sel)
	}
	return els[0], nil
}

func (d *FakeDriver) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := d.begin(ctx, "navigate", url, ""); err != nil {
		return err
	}
	d.mu.Lock()
	d.url = url
	d.mu.Unlock()
	d.done("navigate", url)
	return nil
}

func (d *FakeDriver) Reload(ctx context.Context, timeout time.Duration) error {
	if err := d.begin(ctx, "reload", "", ""); err != nil {
		return err
	}
	d.done("reload", "")
	return nil
}

func (d *FakeDriver) WaitForNetworkIdle(ctx context.Context, timeout time.Duration) error {
	return d.begin(ctx, "idle", "", "")
}

func (d *FakeDriver) act(ctx context.Context, op, sel, value string, visible bool, apply func(*Element) error) error {
	if err := d.begin(ctx, op, sel, value); err != nil {
		return err
	}
	el, err := d.first(op, sel, visible)
	if err != nil {
		return err
	}
	if apply != nil {
		d.mu.Lock()
		err = apply(el)
		d.mu.Unlock()
		if err != nil {
			return err
		}
	}
	d.done(op, sel)
	return nil
}

func (d *FakeDriver) Click(ctx context.Context, sel string, timeout time.Duration) error {
	return d.act(ctx, "click", sel, "", true, nil)
}

func (d *FakeDriver) Hover(ctx context.Context, sel string, timeout time.Duration) error {
	return d.act(ctx, "hover", sel, "", true, nil)
}

func (d *FakeDriver) Fill(ctx context.Context, sel, value string, timeout time.Duration) error {
	return d.act(ctx, "fill", sel, value, true, func(el *Element) error {
		el.Value = value
		return nil
	})
}

func (d *FakeDriver) SelectOption(ctx context.Context, sel, value string, timeout time.Duration) error {
	return d.act(ctx, "select", sel, value, true, func(el *Element) error {
		if el.Options != nil && !slices.Contains(el.Options, value) {
			return fmt.Errorf("%w: select %q: no option %q", entities.ErrElementNotInteractable, sel, value)
		}
		el.Value = value
		return nil
	})
}

func (d *FakeDriver) SetChecked(ctx context.Context, sel string, checked bool, timeout time.Duration) error {
	return d.act(ctx, "check", sel, fmt.Sprint(checked), true, func(el *Element) error {
		el.Checked = checked
		return nil
	})
}

func (d *FakeDriver) TextContent(ctx context.Context, sel string, timeout time.Duration) (string, error) {
	if err := d.begin(ctx, "text", sel, ""); err != nil {
		return "", err
	}
	el, err := d.first("read text of", sel, false)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (d *FakeDriver) Texts(ctx context.Context, sel string) ([]string, error) {
	if err := d.begin(ctx, "texts", sel, ""); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	texts := make([]string, 0, len(d.elements[sel]))
	for _, el := range d.elements[sel] {
		texts = append(texts, el.Text)
	}
	return texts, nil
}

func (d *FakeDriver) Attribute(ctx context.Context, sel, name string, timeout time.Duration) (string, error) {
	if err := d.begin(ctx, "attribute", sel, name); err != nil {
		return "", err
	}
	el, err := d.first("read attribute of", sel, false)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return el.Attrs[name], nil
}

func (d *FakeDriver) Count(ctx context.Context, sel string) (int, error) {
	if err := d.begin(ctx, "count", sel, ""); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.elements[sel]), nil
}

func (d *FakeDriver) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	if err := d.begin(ctx, "wait", sel, ""); err != nil {
		return err
	}
	_, err := d.first("wait for", sel, true)
	return err
}

func (d *FakeDriver) ScrollIntoView(ctx context.Context, sel string, timeout time.Duration) error {
	return d.act(ctx, "scroll", sel, "", false, nil)
}

func (d *FakeDriver) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := d.begin(ctx, "evaluate", "", fmt.Sprint(arg)); err != nil {
		return nil, err
	}
	d.mu.Lock()
	fn := d.evaluate
	d.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(script, arg)
}

// Screenshot writes an empty file so callers can check the path
func (d *FakeDriver) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := d.begin(ctx, "screenshot", "", path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return err
	}
	d.mu.Lock()
	d.ShotPaths = append(d.ShotPaths, path)
	d.mu.Unlock()
	return nil
}

func (d *FakeDriver) URL(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *FakeDriver) Title(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, nil
}

func (d *FakeDriver) Download(ctx context.Context, sel, dir string, timeout time.Duration) (string, error) {
	if err := d.act(ctx, "download", sel, dir, true, nil); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return filepath.Join(dir, d.download), nil
}

func (d *FakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

var _ interfaces.Driver = (*FakeDriver)(nil)
