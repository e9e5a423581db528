package sauce

import (
	"context"
	"testing"

	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	catalogNames  = []string{"Sauce Labs Backpack", "Sauce Labs Bike Light", "Sauce Labs Onesie"}
	catalogPrices = []string{"$29.99", "$9.99", "$7.99"}
)

func newInventory(t *testing.T) (*InventoryPage, *pagetest.FakeDriver) {
	t.Helper()
	cfg, d, _ := newConfig(t)
	d.SetTexts(inventoryLocators.Item, catalogNames...)
	d.SetTexts(inventoryLocators.ItemName, catalogNames...)
	d.SetTexts(inventoryLocators.ItemPrice, catalogPrices...)
	d.Set(inventoryLocators.SortDropdown, &pagetest.Element{Options: []string{"az", "za", "lohi", "hilo"}})
	return NewInventoryPage(cfg), d
}

func TestProductListing(t *testing.T) {
	ctx := context.Background()
	p, _ := newInventory(t)

	n, err := p.ProductCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	names, err := p.ProductNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalogNames, names)

	prices, err := p.ProductPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{29.99, 9.99, 7.99}, prices)
}

func TestSortProductsWaitsForOrder(t *testing.T) {
	ctx := context.Background()
	p, d := newInventory(t)

	// the list re-renders once the dropdown changes
	d.On("select", inventoryLocators.SortDropdown, func(d *pagetest.FakeDriver) {
		d.SetTexts(inventoryLocators.ItemName, "Sauce Labs Onesie", "Sauce Labs Bike Light", "Sauce Labs Backpack")
		d.SetTexts(inventoryLocators.ItemPrice, "$7.99", "$9.99", "$29.99")
	})

	require.NoError(t, p.SortProducts(ctx, entities.SortPriceAsc))
	assert.Equal(t, "lohi", d.Element(inventoryLocators.SortDropdown).Value)
}

func TestSortProductsTimesOutWhenOrderNeverShows(t *testing.T) {
	p, _ := newInventory(t)

	err := p.SortProducts(context.Background(), entities.SortNameDesc)
	assert.ErrorIs(t, err, entities.ErrTimeout)
}

func TestSortProductsFallbackReorders(t *testing.T) {
	ctx := context.Background()
	p, d := newInventory(t)
	d.Element(inventoryLocators.SortDropdown).Hidden = true

	// only the page-script path can change the value, then the list re-renders
	d.OnEvaluate(func(script string, arg any) (any, error) {
		q, ok := arg.(map[string]string)
		if !ok || q["value"] == "" {
			return nil, nil
		}
		d.Element(entities.Selector(q["selector"])).Value = q["value"]
		d.SetTexts(inventoryLocators.ItemName, "Sauce Labs Onesie", "Sauce Labs Bike Light", "Sauce Labs Backpack")
		d.SetTexts(inventoryLocators.ItemPrice, "$7.99", "$9.99", "$29.99")
		return nil, nil
	})

	require.NoError(t, p.SortProducts(ctx, entities.SortNameDesc))
	assert.Equal(t, "za", d.Element(inventoryLocators.SortDropdown).Value)
	assert.Equal(t, 1, d.Called("select", inventoryLocators.SortDropdown), "the standard select is tried once")

	names, err := p.ProductNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sauce Labs Onesie", "Sauce Labs Bike Light", "Sauce Labs Backpack"}, names)
	assert.True(t, entities.SortNameDesc.IsOrdered(names, nil))
}

func TestSortProductsEmptyListIsNotSorted(t *testing.T) {
	p, d := newInventory(t)
	d.Remove(inventoryLocators.ItemName)
	d.Remove(inventoryLocators.ItemPrice)

	err := p.SortProducts(context.Background(), entities.SortNameDesc)
	assert.ErrorIs(t, err, entities.ErrTimeout)
}

func TestSortProductsRejectsUnknownKey(t *testing.T) {
	p, d := newInventory(t)

	err := p.SortProducts(context.Background(), "price")
	assert.ErrorIs(t, err, entities.ErrInvalidSortOption)
	assert.Zero(t, d.Called("select", inventoryLocators.SortDropdown))
}

func TestCartItemCount(t *testing.T) {
	ctx := context.Background()
	p, d := newInventory(t)

	n, err := p.CartItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no badge means an empty cart")

	d.On("click", inventoryLocators.ItemButton("Sauce Labs Backpack"), func(d *pagetest.FakeDriver) {
		d.SetTexts(inventoryLocators.CartBadge, "1")
	})
	d.Set(inventoryLocators.ItemButton("Sauce Labs Backpack"), &pagetest.Element{Text: "Add to cart"})
	require.NoError(t, p.AddProductToCart(ctx, "Sauce Labs Backpack"))

	n, err = p.CartItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddProductToCartUnknownProduct(t *testing.T) {
	p, _ := newInventory(t)
	err := p.AddProductToCart(context.Background(), "Nope")
	assert.ErrorIs(t, err, entities.ErrElementNotFound)
}

func TestItemSelectorsFilterByName(t *testing.T) {
	assert.Equal(t, entities.Selector(`.inventory_item:has-text("Sauce Labs Backpack") button`),
		inventoryLocators.ItemButton("Sauce Labs Backpack"))
	assert.Equal(t, entities.Selector(`.inventory_item:has-text("Sauce Labs Backpack") button:has-text("Remove")`),
		inventoryLocators.RemoveButton("Sauce Labs Backpack"))
}

func TestLogoutOpensMenuFirst(t *testing.T) {
	ctx := context.Background()
	p, d := newInventory(t)
	d.Set(inventoryLocators.Menu, &pagetest.Element{})
	d.Set(inventoryLocators.LogoutLink, &pagetest.Element{Hidden: true})
	d.On("click", inventoryLocators.Menu, func(d *pagetest.FakeDriver) {
		d.Element(inventoryLocators.LogoutLink).Hidden = false
	})

	require.NoError(t, p.Logout(ctx))
	assert.Equal(t, 1, d.Called("click", inventoryLocators.LogoutLink))
}
