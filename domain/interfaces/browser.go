package interfaces

import (
	"context"
	"time"
)

// Driver defines the contract every automation engine implements.
//
// Selectors are CSS, optionally ending in a :has-text("...") filter.
// Failures wrap one of the entities error sentinels (ErrElementNotFound,
// ErrElementNotInteractable, ErrTimeout) together with the engine's cause.
type Driver interface {
	// Navigate loads url and waits for the load event
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Reload reloads the current page
	Reload(ctx context.Context, timeout time.Duration) error

	// WaitForNetworkIdle blocks until no network activity is seen for the
	// engine's quiescence window
	WaitForNetworkIdle(ctx context.Context, timeout time.Duration) error

	// Click waits for the first match to become visible and clicks it
	Click(ctx context.Context, selector string, timeout time.Duration) error

	// Hover moves the pointer over the first match
	Hover(ctx context.Context, selector string, timeout time.Duration) error

	// Fill replaces the value of an input
	Fill(ctx context.Context, selector, value string, timeout time.Duration) error

	// SelectOption selects a <select> option by value
	SelectOption(ctx context.Context, selector, value string, timeout time.Duration) error

	// SetChecked checks or unchecks a checkbox or radio
	SetChecked(ctx context.Context, selector string, checked bool, timeout time.Duration) error

	// TextContent returns the raw text of the first match, waiting up to
	// timeout for it to be attached
	TextContent(ctx context.Context, selector string, timeout time.Duration) (string, error)

	// Texts returns the text of every current match, possibly none
	Texts(ctx context.Context, selector string) ([]string, error)

	// Attribute returns an attribute of the first match ("" when absent)
	Attribute(ctx context.Context, selector, name string, timeout time.Duration) (string, error)

	// Count returns how many elements currently match, without waiting
	Count(ctx context.Context, selector string) (int, error)

	// WaitVisible blocks until the first match is visible
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// ScrollIntoView scrolls the first match into the viewport
	ScrollIntoView(ctx context.Context, selector string, timeout time.Duration) error

	// Evaluate runs script, a JavaScript function expression taking one
	// argument, e.g. "(arg) => document.title", and returns its result
	Evaluate(ctx context.Context, script string, arg any) (any, error)

	// Screenshot writes a PNG of the viewport (or the full page) to path
	Screenshot(ctx context.Context, path string, fullPage bool) error

	// URL returns the current page URL
	URL(ctx context.Context) (string, error)

	// Title returns the current page title
	Title(ctx context.Context) (string, error)

	// Download clicks selector, waits for the resulting download and saves
	// it under dir, returning the saved path
	Download(ctx context.Context, selector, dir string, timeout time.Duration) (string, error)

	// Close releases the page, context and browser
	Close() error
}
