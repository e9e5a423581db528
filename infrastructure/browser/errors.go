package browser

import (
	"context"
	"errors"
	"fmt"

	"pom_automation/domain/entities"
)

// elementError wraps a failed element wait. The element is reported as not
// found when nothing matches sel right now, otherwise as not interactable.
// count is the engine's own non-waiting match counter.
func elementError(ctx context.Context, op, sel string, cause error, count func(context.Context, string) (int, error)) error {
	if errors.Is(cause, context.Canceled) {
		return cause
	}
	// the op context may already be spent
	probeCtx := context.WithoutCancel(ctx)
	n, err := count(probeCtx, sel)
	if err == nil && n == 0 {
		return fmt.Errorf("%w: %s %q: %w", entities.ErrElementNotFound, op, sel, cause)
	}
	return fmt.Errorf("%w: %s %q: %w", entities.ErrElementNotInteractable, op, sel, cause)
}

// timeoutError wraps a failed page-level wait (navigation, idle, download)
func timeoutError(op string, cause error) error {
	if errors.Is(cause, context.Canceled) {
		return cause
	}
	return fmt.Errorf("%w: %s: %w", entities.ErrTimeout, op, cause)
}
