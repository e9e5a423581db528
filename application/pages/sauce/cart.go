package sauce

import (
	"context"
	"fmt"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type cartSelectors struct {
	Item             entities.Selector
	ItemName         entities.Selector
	ItemButton       entities.NamedSelector
	RemoveButton     entities.NamedSelector
	ContinueShopping entities.Selector
	Checkout         entities.Selector
}

var cartLocators = cartSelectors{
	Item:     ".cart_item",
	ItemName: ".inventory_item_name",
	ItemButton: func(name string) entities.Selector {
		return entities.HasText(".cart_item", name) + " button"
	},
	RemoveButton:     entities.Named(`[data-test="remove-%s"]`),
	ContinueShopping: `[data-test="continue-shopping"]`,
	Checkout:         `[data-test="checkout"]`,
}

type CartPage struct {
	interfaces.ElementInteractions
	sel cartSelectors
}

func NewCartPage(cfg pages.Config) *CartPage {
	return &CartPage{
		ElementInteractions: pages.NewBase(cfg, "sauce.cart"),
		sel:                 cartLocators,
	}
}

func (p *CartPage) ItemCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.Item)
}

func (p *CartPage) ItemNames(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, p.sel.ItemName)
}

// RemoveItem - removes the row whose name is exactly name, using the
// product id carried by the row's button
func (p *CartPage) RemoveItem(ctx context.Context, name string) error {
	p.Logger().Infof("Removing item from cart: %s", name)

	names, err := p.ItemNames(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: product not in cart: %s", entities.ErrElementNotFound, name)
	}

	id, err := p.Attribute(ctx, p.sel.ItemButton(name), "id")
	if err != nil {
		return err
	}
	productID := strings.TrimPrefix(id, "remove-")
	if err := p.Click(ctx, p.sel.RemoveButton(productID)); err != nil {
		return err
	}
	p.Logger().Infof("Removed item from cart: %s", name)
	return nil
}

func (p *CartPage) ContinueShopping(ctx context.Context) error {
	p.Logger().Info("Continuing shopping")
	return p.ClickAndWait(ctx, p.sel.ContinueShopping)
}

func (p *CartPage) ProceedToCheckout(ctx context.Context) error {
	p.Logger().Info("Proceeding to checkout")
	return p.ClickAndWait(ctx, p.sel.Checkout)
}
