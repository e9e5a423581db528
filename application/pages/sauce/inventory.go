package sauce

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

const sortPollInterval = 100 * time.Millisecond

type inventorySelectors struct {
	List         entities.Selector
	Item         entities.Selector
	ItemName     entities.Selector
	ItemPrice    entities.Selector
	ItemButton   entities.NamedSelector
	RemoveButton entities.NamedSelector
	SortDropdown entities.Selector
	CartBadge    entities.Selector
	CartLink     entities.Selector
	Menu         entities.Selector
	LogoutLink   entities.Selector
}

var inventoryLocators = inventorySelectors{
	List:      ".inventory_list",
	Item:      ".inventory_item",
	ItemName:  ".inventory_item_name",
	ItemPrice: ".inventory_item_price",
	ItemButton: func(name string) entities.Selector {
		return entities.HasText(".inventory_item", name) + " button"
	},
	RemoveButton: func(name string) entities.Selector {
		return entities.HasText(entities.HasText(".inventory_item", name)+" button", "Remove")
	},
	// the live site renamed the attribute; accept either spelling
	SortDropdown: `[data-test="product-sort-container"], [data-test="product_sort_container"]`,
	CartBadge:    ".shopping_cart_badge",
	CartLink:     ".shopping_cart_link",
	Menu:         "#react-burger-menu-btn",
	LogoutLink:   "#logout_sidebar_link",
}

type InventoryPage struct {
	interfaces.ElementInteractions
	sel inventorySelectors
}

func NewInventoryPage(cfg pages.Config) *InventoryPage {
	return &InventoryPage{
		ElementInteractions: pages.NewBase(cfg, "sauce.inventory"),
		sel:                 inventoryLocators,
	}
}

// IsLoaded - the product list is showing
func (p *InventoryPage) IsLoaded(ctx context.Context) bool {
	return p.IsElementVisible(ctx, p.sel.List, p.Timeouts().Visible)
}

func (p *InventoryPage) ProductCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.Item)
}

// ProductNames - names in display order, blanks dropped
func (p *InventoryPage) ProductNames(ctx context.Context) ([]string, error) {
	texts, err := p.Texts(ctx, p.sel.ItemName)
	if err != nil {
		return nil, err
	}
	names := texts[:0]
	for _, t := range texts {
		if t != "" {
			names = append(names, t)
		}
	}
	return names, nil
}

// ProductPrices - prices in display order
func (p *InventoryPage) ProductPrices(ctx context.Context) ([]float64, error) {
	texts, err := p.Texts(ctx, p.sel.ItemPrice)
	if err != nil {
		return nil, err
	}
	prices := make([]float64, 0, len(texts))
	for _, t := range texts {
		v, err := entities.ParseAmount(t)
		if err != nil {
			return nil, err
		}
		prices = append(prices, v)
	}
	return prices, nil
}

// AddProductToCart - clicks the button inside the item called name
func (p *InventoryPage) AddProductToCart(ctx context.Context, name string) error {
	p.Logger().Infof("Adding product to cart: %s", name)
	if err := p.Click(ctx, p.sel.ItemButton(name)); err != nil {
		return err
	}
	p.Logger().Infof("Added product to cart: %s", name)
	return nil
}

func (p *InventoryPage) RemoveProductFromCart(ctx context.Context, name string) error {
	p.Logger().Infof("Removing product from cart: %s", name)
	return p.Click(ctx, p.sel.RemoveButton(name))
}

// SortProducts - applies the sort and waits until the list shows it
func (p *InventoryPage) SortProducts(ctx context.Context, option entities.SortOption) error {
	if !option.Valid() {
		return fmt.Errorf("%w: %q", entities.ErrInvalidSortOption, option)
	}
	p.Logger().Infof("Sorting products by: %s", option)

	if err := p.SelectOptionResilient(ctx, p.sel.SortDropdown, string(option)); err != nil {
		return err
	}
	return p.waitSorted(ctx, option)
}

func (p *InventoryPage) waitSorted(ctx context.Context, option entities.SortOption) error {
	deadline := time.Now().Add(p.Timeouts().Element)
	for {
		names, err := p.ProductNames(ctx)
		if err != nil {
			return err
		}
		prices, err := p.ProductPrices(ctx)
		if err != nil {
			return err
		}
		// an unrendered list is not a sorted one
		if len(names) > 0 && len(names) == len(prices) && option.IsOrdered(names, prices) {
			p.Logger().Info("Successfully sorted products")
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: products not ordered by %s", entities.ErrTimeout, option)
		}
		if err := pages.Pause(ctx, sortPollInterval); err != nil {
			return err
		}
	}
}

// CartItemCount - the badge number, 0 when the badge is absent
func (p *InventoryPage) CartItemCount(ctx context.Context) (int, error) {
	n, err := p.Count(ctx, p.sel.CartBadge)
	if err != nil || n == 0 {
		return 0, err
	}
	text, err := p.GetText(ctx, p.sel.CartBadge)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge %q: %w", text, err)
	}
	return count, nil
}

func (p *InventoryPage) GoToCart(ctx context.Context) error {
	p.Logger().Info("Navigating to the shopping cart")
	return p.ClickAndWait(ctx, p.sel.CartLink)
}

// Logout - opens the side menu and logs out
func (p *InventoryPage) Logout(ctx context.Context) error {
	p.Logger().Info("Logging out")
	if err := p.Click(ctx, p.sel.Menu); err != nil {
		return err
	}
	if err := p.WaitForElementVisible(ctx, p.sel.LogoutLink, 0); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, p.sel.LogoutLink)
}
