package sauce

import (
	"context"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type checkoutInfoSelectors struct {
	FirstName  entities.Selector
	LastName   entities.Selector
	PostalCode entities.Selector
	Continue   entities.Selector
	Cancel     entities.Selector
	Error      entities.Selector
}

var checkoutInfoLocators = checkoutInfoSelectors{
	FirstName:  `[data-test="firstName"]`,
	LastName:   `[data-test="lastName"]`,
	PostalCode: `[data-test="postalCode"]`,
	Continue:   `[data-test="continue"]`,
	Cancel:     `[data-test="cancel"]`,
	Error:      `[data-test="error"]`,
}

// CheckoutInfoPage - step one, buyer details
type CheckoutInfoPage struct {
	interfaces.ElementInteractions
	sel checkoutInfoSelectors
}

func NewCheckoutInfoPage(cfg pages.Config) *CheckoutInfoPage {
	return &CheckoutInfoPage{
		ElementInteractions: pages.NewBase(cfg, "sauce.checkout_info"),
		sel:                 checkoutInfoLocators,
	}
}

func (p *CheckoutInfoPage) FillCheckoutInfo(ctx context.Context, firstName, lastName, postalCode string) error {
	p.Logger().Infof("Filling checkout info: %s %s, %s", firstName, lastName, postalCode)
	for _, field := range []struct {
		sel   entities.Selector
		value string
	}{
		{p.sel.FirstName, firstName},
		{p.sel.LastName, lastName},
		{p.sel.PostalCode, postalCode},
	} {
		if err := p.FillInput(ctx, field.sel, field.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *CheckoutInfoPage) Continue(ctx context.Context) error {
	p.Logger().Info("Continuing to next checkout step")
	return p.ClickAndWait(ctx, p.sel.Continue)
}

func (p *CheckoutInfoPage) Cancel(ctx context.Context) error {
	p.Logger().Info("Cancelling checkout")
	return p.ClickAndWait(ctx, p.sel.Cancel)
}

func (p *CheckoutInfoPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Error)
}

type checkoutOverviewSelectors struct {
	ItemName entities.Selector
	Subtotal entities.Selector
	Tax      entities.Selector
	Total    entities.Selector
	Cancel   entities.Selector
	Finish   entities.Selector
}

var checkoutOverviewLocators = checkoutOverviewSelectors{
	ItemName: ".inventory_item_name",
	Subtotal: ".summary_subtotal_label",
	Tax:      ".summary_tax_label",
	Total:    ".summary_total_label",
	Cancel:   `[data-test="cancel"]`,
	Finish:   `[data-test="finish"]`,
}

// CheckoutOverviewPage - step two, order summary
type CheckoutOverviewPage struct {
	interfaces.ElementInteractions
	sel checkoutOverviewSelectors
}

func NewCheckoutOverviewPage(cfg pages.Config) *CheckoutOverviewPage {
	return &CheckoutOverviewPage{
		ElementInteractions: pages.NewBase(cfg, "sauce.checkout_overview"),
		sel:                 checkoutOverviewLocators,
	}
}

// amount reads the first $N.NN in a summary label, 0 when there is none
func (p *CheckoutOverviewPage) amount(ctx context.Context, sel entities.Selector) (float64, error) {
	text, err := p.GetText(ctx, sel)
	if err != nil {
		return 0, err
	}
	return entities.DollarAmount(text), nil
}

// Subtotal - from "Item total: $29.99"
func (p *CheckoutOverviewPage) Subtotal(ctx context.Context) (float64, error) {
	return p.amount(ctx, p.sel.Subtotal)
}

func (p *CheckoutOverviewPage) Tax(ctx context.Context) (float64, error) {
	return p.amount(ctx, p.sel.Tax)
}

func (p *CheckoutOverviewPage) Total(ctx context.Context) (float64, error) {
	return p.amount(ctx, p.sel.Total)
}

func (p *CheckoutOverviewPage) ItemNames(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, p.sel.ItemName)
}

func (p *CheckoutOverviewPage) Cancel(ctx context.Context) error {
	p.Logger().Info("Cancelling checkout")
	return p.ClickAndWait(ctx, p.sel.Cancel)
}

func (p *CheckoutOverviewPage) Finish(ctx context.Context) error {
	p.Logger().Info("Finishing checkout")
	return p.ClickAndWait(ctx, p.sel.Finish)
}

type checkoutCompleteSelectors struct {
	Header     entities.Selector
	Text       entities.Selector
	BackToHome entities.Selector
}

var checkoutCompleteLocators = checkoutCompleteSelectors{
	Header:     ".complete-header",
	Text:       ".complete-text",
	BackToHome: `[data-test="back-to-products"]`,
}

// CheckoutCompletePage - confirmation screen
type CheckoutCompletePage struct {
	interfaces.ElementInteractions
	sel checkoutCompleteSelectors
}

func NewCheckoutCompletePage(cfg pages.Config) *CheckoutCompletePage {
	return &CheckoutCompletePage{
		ElementInteractions: pages.NewBase(cfg, "sauce.checkout_complete"),
		sel:                 checkoutCompleteLocators,
	}
}

func (p *CheckoutCompletePage) Header(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Header)
}

func (p *CheckoutCompletePage) Text(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Text)
}

func (p *CheckoutCompletePage) BackToHome(ctx context.Context) error {
	p.Logger().Info("Going back to home")
	return p.ClickAndWait(ctx, p.sel.BackToHome)
}
