package pages

import (
	"context"

	"pom_automation/domain/entities"
)

// The fallback clicks the element from page script, which skips the
// visibility and actionability checks a real click has.
const (
	forceClickScript = `(q) => {
	const el = document.querySelector(q.selector);
	if (el) el.click();
}`

	forceSetValueScript = `(q) => {
	const select = document.querySelector(q.selector);
	if (!select) throw new Error('no element matches ' + q.selector);
	select.value = q.value;
	select.dispatchEvent(new Event('change', { bubbles: true }));
}`
)

// SelectOptionResilient - selects value the normal way, and if that or the
// following load wait fails, forces it through page script. When both fail
// the first error is returned.
func (b *Base) SelectOptionResilient(ctx context.Context, sel entities.Selector, value string) error {
	b.logger.Infof("Selecting option %s from dropdown %s", value, sel)

	primary := b.driver.SelectOption(ctx, sel.String(), value, b.timeouts.Select)
	if primary == nil {
		primary = b.WaitForPageLoad(ctx)
	}
	if primary == nil {
		b.logger.Infof("Successfully selected %s", value)
		return nil
	}

	b.logger.Warnf("Standard select failed, forcing it through page script: %v", primary)
	if err := b.forceSelect(ctx, sel, value); err != nil {
		b.logger.Errorf("All select approaches failed: %v", err)
		return primary
	}
	b.logger.Info("Alternative select approach succeeded")
	return nil
}

func (b *Base) forceSelect(ctx context.Context, sel entities.Selector, value string) error {
	if _, err := b.driver.Evaluate(ctx, forceClickScript, map[string]string{"selector": sel.String()}); err != nil {
		return err
	}
	if err := Pause(ctx, b.timeouts.SelectSettle); err != nil {
		return err
	}
	arg := map[string]string{"selector": sel.String(), "value": value}
	if _, err := b.driver.Evaluate(ctx, forceSetValueScript, arg); err != nil {
		return err
	}
	return b.WaitForPageLoad(ctx)
}
