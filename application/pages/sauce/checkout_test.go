package sauce

import (
	"context"
	"testing"

	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillCheckoutInfo(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	for _, sel := range []entities.Selector{
		checkoutInfoLocators.FirstName,
		checkoutInfoLocators.LastName,
		checkoutInfoLocators.PostalCode,
	} {
		d.Set(sel, &pagetest.Element{})
	}

	p := NewCheckoutInfoPage(cfg)
	require.NoError(t, p.FillCheckoutInfo(ctx, "John", "Doe", "12345"))
	assert.Equal(t, "John", d.Element(checkoutInfoLocators.FirstName).Value)
	assert.Equal(t, "Doe", d.Element(checkoutInfoLocators.LastName).Value)
	assert.Equal(t, "12345", d.Element(checkoutInfoLocators.PostalCode).Value)
}

func TestCheckoutInfoMissingField(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	d.Set(checkoutInfoLocators.Continue, &pagetest.Element{})
	d.SetTexts(checkoutInfoLocators.Error, "Error: First Name is required")

	p := NewCheckoutInfoPage(cfg)
	require.NoError(t, p.Continue(ctx))
	msg, err := p.ErrorMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Error: First Name is required", msg)
}

func TestOverviewAmounts(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	d.SetTexts(checkoutOverviewLocators.Subtotal, "Item total: $29.99")
	d.SetTexts(checkoutOverviewLocators.Tax, "Tax: $2.40")
	d.SetTexts(checkoutOverviewLocators.Total, "Total: $32.39")
	d.SetTexts(checkoutOverviewLocators.ItemName, "Sauce Labs Backpack")

	p := NewCheckoutOverviewPage(cfg)
	subtotal, err := p.Subtotal(ctx)
	require.NoError(t, err)
	tax, err := p.Tax(ctx)
	require.NoError(t, err)
	total, err := p.Total(ctx)
	require.NoError(t, err)

	assert.Equal(t, 29.99, subtotal)
	assert.Equal(t, 2.40, tax)
	assert.InDelta(t, subtotal+tax, total, 0.001)

	names, err := p.ItemNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sauce Labs Backpack"}, names)
}

func TestOverviewAmountWithoutDollarIsZero(t *testing.T) {
	cfg, d, _ := newConfig(t)
	d.SetTexts(checkoutOverviewLocators.Tax, "Tax: pending")

	tax, err := NewCheckoutOverviewPage(cfg).Tax(context.Background())
	require.NoError(t, err)
	assert.Zero(t, tax)
}

func TestCheckoutComplete(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	d.SetTexts(checkoutCompleteLocators.Header, "Thank you for your order!")
	d.SetTexts(checkoutCompleteLocators.Text, "Your order has been dispatched")
	d.Set(checkoutCompleteLocators.BackToHome, &pagetest.Element{})

	p := NewCheckoutCompletePage(cfg)
	header, err := p.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for your order!", header)
	require.NoError(t, p.BackToHome(ctx))
}
