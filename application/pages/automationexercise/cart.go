package automationexercise

import (
	"context"
	"fmt"
	"strconv"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type cartSelectors struct {
	EmptyCart        entities.Selector
	Rows             entities.Selector
	ItemName         entities.IndexedSelector
	ItemPrice        entities.IndexedSelector
	ItemQuantity     entities.IndexedSelector
	ItemTotal        entities.IndexedSelector
	ItemRemove       entities.IndexedSelector
	ProceedCheckout  entities.Selector
	RegisterLogin    entities.Selector
	ContinueShopping entities.Selector
	TotalPrice       entities.Selector
}

var cartLocators = cartSelectors{
	EmptyCart:        "#empty_cart",
	Rows:             "#cart_info_table tbody tr",
	ItemName:         entities.NthChild("#cart_info_table tbody tr:nth-child(%d) td.cart_description h4 a"),
	ItemPrice:        entities.NthChild("#cart_info_table tbody tr:nth-child(%d) td.cart_price p"),
	ItemQuantity:     entities.NthChild("#cart_info_table tbody tr:nth-child(%d) td.cart_quantity button"),
	ItemTotal:        entities.NthChild("#cart_info_table tbody tr:nth-child(%d) td.cart_total p"),
	ItemRemove:       entities.NthChild("#cart_info_table tbody tr:nth-child(%d) td.cart_delete a"),
	ProceedCheckout:  ".btn.btn-default.check_out",
	RegisterLogin:    ".modal-body a",
	ContinueShopping: "div.container a.btn.btn-primary",
	TotalPrice:       "#cart_info_table tfoot tr:nth-child(1) td.cart_total p.cart_total_price",
}

type CartPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     cartSelectors
}

func NewCartPage(cfg pages.Config, baseURL string) *CartPage {
	return &CartPage{
		ElementInteractions: pages.NewBase(cfg, "automationexercise.cart"),
		baseURL:             baseURL,
		sel:                 cartLocators,
	}
}

func (p *CartPage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to Cart page")
	return open(ctx, p, siteURL(p.baseURL, "/view_cart"))
}

func (p *CartPage) ItemCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.Rows)
}

// IsEmpty - the empty-cart message shows or no rows are left
func (p *CartPage) IsEmpty(ctx context.Context) (bool, error) {
	if p.IsElementVisible(ctx, p.sel.EmptyCart, 0) {
		return true, nil
	}
	n, err := p.ItemCount(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (p *CartPage) ItemName(ctx context.Context, i int) (string, error) {
	return p.GetText(ctx, p.sel.ItemName(i))
}

func (p *CartPage) ItemPrice(ctx context.Context, i int) (string, error) {
	return p.GetText(ctx, p.sel.ItemPrice(i))
}

func (p *CartPage) ItemQuantity(ctx context.Context, i int) (int, error) {
	text, err := p.GetText(ctx, p.sel.ItemQuantity(i))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart row %d quantity %q: %w", i, text, err)
	}
	return n, nil
}

func (p *CartPage) ItemTotal(ctx context.Context, i int) (string, error) {
	return p.GetText(ctx, p.sel.ItemTotal(i))
}

func (p *CartPage) RemoveItem(ctx context.Context, i int) error {
	p.Logger().Infof("Removing item at index %d from cart", i)
	return p.ClickAndWait(ctx, p.sel.ItemRemove(i))
}

func (p *CartPage) TotalPrice(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.TotalPrice)
}

// ProceedToCheckout reports false when the register/login modal shows up
// instead of the checkout page.
func (p *CartPage) ProceedToCheckout(ctx context.Context) (bool, error) {
	p.Logger().Info("Proceeding to checkout")
	if err := p.Click(ctx, p.sel.ProceedCheckout); err != nil {
		return false, err
	}
	if p.IsElementVisible(ctx, modalContent, p.Timeouts().ModalProbe) {
		p.Logger().Info("Login/register modal appeared")
		return false, nil
	}
	if err := p.WaitForPageLoad(ctx); err != nil {
		return false, err
	}
	p.Logger().Info("Proceeded to checkout successfully")
	return true, nil
}

func (p *CartPage) ClickRegisterLogin(ctx context.Context) error {
	p.Logger().Info("Clicking Register/Login button from modal")
	return p.ClickAndWait(ctx, p.sel.RegisterLogin)
}

func (p *CartPage) ContinueShopping(ctx context.Context) error {
	p.Logger().Info("Clicking Continue Shopping button")
	return p.ClickAndWait(ctx, p.sel.ContinueShopping)
}

// ItemDetails reads every row in display order
func (p *CartPage) ItemDetails(ctx context.Context) ([]entities.CartItem, error) {
	n, err := p.ItemCount(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]entities.CartItem, 0, n)
	for i := range n {
		var item entities.CartItem
		if item.Name, err = p.ItemName(ctx, i); err != nil {
			return nil, err
		}
		if item.Price, err = p.ItemPrice(ctx, i); err != nil {
			return nil, err
		}
		if item.Quantity, err = p.ItemQuantity(ctx, i); err != nil {
			return nil, err
		}
		if item.Total, err = p.ItemTotal(ctx, i); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *CartPage) Reload(ctx context.Context) error {
	p.Logger().Info("Reloading cart page")
	if err := p.ElementInteractions.Reload(ctx); err != nil {
		return err
	}
	return p.WaitForPageLoad(ctx)
}

func (p *CartPage) CurrentURL(ctx context.Context) (string, error) {
	return p.GetCurrentURL(ctx)
}
