package automationexercise

import (
	"context"
	"testing"

	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRow(d *pagetest.FakeDriver, i int, name, price, qty, total string) {
	d.SetTexts(cartLocators.ItemName(i), name)
	d.SetTexts(cartLocators.ItemPrice(i), price)
	d.SetTexts(cartLocators.ItemQuantity(i), qty)
	d.SetTexts(cartLocators.ItemTotal(i), total)
}

func TestItemDetails(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	d.SetTexts(cartLocators.Rows, "", "")
	cartRow(d, 0, "Blue Top", "Rs. 500", "1", "Rs. 500")
	cartRow(d, 1, "Men Tshirt", "Rs. 400", "2", "Rs. 800")

	items, err := NewCartPage(cfg, "").ItemDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.CartItem{
		{Name: "Blue Top", Price: "Rs. 500", Quantity: 1, Total: "Rs. 500"},
		{Name: "Men Tshirt", Price: "Rs. 400", Quantity: 2, Total: "Rs. 800"},
	}, items)

	for _, item := range items {
		ok, err := item.Consistent(0.01)
		require.NoError(t, err)
		assert.True(t, ok, item.Name)
	}
}

func TestItemQuantityNotANumber(t *testing.T) {
	cfg, d, _ := newConfig(t)
	d.SetTexts(cartLocators.ItemQuantity(0), "many")

	_, err := NewCartPage(cfg, "").ItemQuantity(context.Background(), 0)
	assert.ErrorContains(t, err, `quantity "many"`)
}

func TestIsEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("message shown", func(t *testing.T) {
		cfg, d, _ := newConfig(t)
		d.SetTexts(cartLocators.EmptyCart, "Cart is empty!")
		empty, err := NewCartPage(cfg, "").IsEmpty(ctx)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("no rows", func(t *testing.T) {
		cfg, _, _ := newConfig(t)
		empty, err := NewCartPage(cfg, "").IsEmpty(ctx)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("rows present", func(t *testing.T) {
		cfg, d, _ := newConfig(t)
		d.Set(cartLocators.EmptyCart, &pagetest.Element{Hidden: true})
		d.SetTexts(cartLocators.Rows, "")
		empty, err := NewCartPage(cfg, "").IsEmpty(ctx)
		require.NoError(t, err)
		assert.False(t, empty)
	})
}

func TestProceedToCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("guest sees the modal", func(t *testing.T) {
		cfg, d, _ := newConfig(t)
		present(d, cartLocators.ProceedCheckout)
		d.On("click", cartLocators.ProceedCheckout, func(d *pagetest.FakeDriver) {
			present(d, modalContent)
		})

		ok, err := NewCartPage(cfg, "").ProceedToCheckout(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, d.Called("idle", ""))
	})

	t.Run("logged in user reaches checkout", func(t *testing.T) {
		cfg, d, _ := newConfig(t)
		present(d, cartLocators.ProceedCheckout)

		ok, err := NewCartPage(cfg, "").ProceedToCheckout(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, d.Called("idle", ""))
	})
}

func TestRemoveItemAndReload(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	d.SetTexts(cartLocators.Rows, "")
	present(d, cartLocators.ItemRemove(0))
	d.On("click", cartLocators.ItemRemove(0), func(d *pagetest.FakeDriver) {
		d.Remove(cartLocators.Rows)
	})
	d.SetPage("https://automationexercise.com/view_cart", "Automation Exercise - Checkout")

	p := NewCartPage(cfg, "https://automationexercise.com")
	require.NoError(t, p.RemoveItem(ctx, 0))
	require.NoError(t, p.Reload(ctx))
	assert.Equal(t, 1, d.Called("reload", ""))

	n, err := p.ItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	url, err := p.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://automationexercise.com/view_cart", url)
}
