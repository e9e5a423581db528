package automationexercise

import (
	"context"
	"strconv"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type productsSelectors struct {
	SearchResultTitle  entities.Selector
	ProductCards       entities.Selector
	ProductNames       entities.Selector
	ProductPrices      entities.Selector
	ProductCard        entities.IndexedSelector
	ViewProduct        entities.IndexedSelector
	AddToCart          entities.IndexedSelector
	FirstProductView   entities.Selector
	BrandLinks         entities.Selector
	BrandLink          entities.NamedSelector
	DetailName         entities.Selector
	DetailCategory     entities.Selector
	DetailPrice        entities.Selector
	DetailAvailability entities.Selector
	DetailCondition    entities.Selector
	DetailBrand        entities.Selector
	Quantity           entities.Selector
	AddToCartDetail    entities.Selector
	ReviewName         entities.Selector
	ReviewEmail        entities.Selector
	ReviewText         entities.Selector
	SubmitReview       entities.Selector
	ReviewSuccess      entities.Selector
}

var productsLocators = productsSelectors{
	SearchResultTitle:  ".features_items .title.text-center",
	ProductCards:       ".features_items .product-image-wrapper",
	ProductNames:       ".features_items .productinfo h2",
	ProductPrices:      ".features_items .productinfo p",
	ProductCard:        entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .product-image-wrapper"),
	ViewProduct:        entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .choose a"),
	AddToCart:          entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .productinfo .add-to-cart"),
	FirstProductView:   ".choose a",
	BrandLinks:         ".brands-name ul li a",
	BrandLink:          func(name string) entities.Selector { return entities.HasText(".brands-name ul li a", name) },
	DetailName:         ".product-information h2",
	DetailCategory:     ".product-information p:nth-child(3)",
	DetailPrice:        ".product-information span span",
	DetailAvailability: ".product-information p:nth-child(5)",
	DetailCondition:    ".product-information p:nth-child(6)",
	DetailBrand:        ".product-information p:nth-child(7)",
	Quantity:           "#quantity",
	AddToCartDetail:    "button.cart",
	ReviewName:         "#name",
	ReviewEmail:        "#email",
	ReviewText:         "#review",
	SubmitReview:       "#button-review",
	ReviewSuccess:      ".alert-success span",
}

// ProductsPage - the catalogue, search results and product detail views
type ProductsPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     productsSelectors
}

func NewProductsPage(cfg pages.Config, baseURL string) *ProductsPage {
	return &ProductsPage{
		ElementInteractions: pages.NewBase(cfg, "automationexercise.products"),
		baseURL:             baseURL,
		sel:                 productsLocators,
	}
}

func (p *ProductsPage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to Products page")
	return open(ctx, p, siteURL(p.baseURL, "/products"))
}

func (p *ProductsPage) SearchProduct(ctx context.Context, term string) error {
	return search(ctx, p, term)
}

// SearchResultTitle - "SEARCHED PRODUCTS" after a search
func (p *ProductsPage) SearchResultTitle(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.SearchResultTitle)
}

func (p *ProductsPage) ProductCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.ProductCards)
}

func (p *ProductsPage) ProductNames(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, p.sel.ProductNames)
}

// ProductPrices - raw labels such as "Rs. 500"
func (p *ProductsPage) ProductPrices(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, p.sel.ProductPrices)
}

func (p *ProductsPage) ViewProduct(ctx context.Context, i int) error {
	p.Logger().Infof("Viewing product at index %d", i)
	return p.ClickAndWait(ctx, p.sel.ViewProduct(i))
}

func (p *ProductsPage) AddProductToCart(ctx context.Context, i int) error {
	p.Logger().Infof("Adding product at index %d to cart", i)
	return addToCart(ctx, p, p.sel.ProductCard(i), p.sel.AddToCart(i))
}

func (p *ProductsPage) ViewCart(ctx context.Context) error {
	p.Logger().Info("Clicking View Cart button")
	return p.ClickAndWait(ctx, modalViewCart)
}

func (p *ProductsPage) ContinueShopping(ctx context.Context) error {
	p.Logger().Info("Clicking Continue Shopping button")
	return p.Click(ctx, modalContinue)
}

func (p *ProductsPage) ViewFirstProduct(ctx context.Context) error {
	p.Logger().Info("Viewing first product")
	return p.ClickAndWait(ctx, p.sel.FirstProductView)
}

// Brands - sidebar brand names without their "(6)" product counts
func (p *ProductsPage) Brands(ctx context.Context) ([]string, error) {
	texts, err := p.Texts(ctx, p.sel.BrandLinks)
	if err != nil {
		return nil, err
	}
	for i, t := range texts {
		if strings.HasPrefix(t, "(") {
			if _, name, ok := strings.Cut(t, ")"); ok {
				texts[i] = strings.TrimSpace(name)
			}
		}
	}
	return texts, nil
}

func (p *ProductsPage) ClickBrand(ctx context.Context, brand string) error {
	p.Logger().Infof("Clicking on brand: %s", brand)
	return p.ClickAndWait(ctx, p.sel.BrandLink(brand))
}

func (p *ProductsPage) DetailName(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.DetailName)
}

func (p *ProductsPage) detail(ctx context.Context, sel entities.Selector, label string) (string, error) {
	text, err := p.GetText(ctx, sel)
	if err != nil {
		return "", err
	}
	return trimLabel(text, label), nil
}

func (p *ProductsPage) DetailCategory(ctx context.Context) (string, error) {
	return p.detail(ctx, p.sel.DetailCategory, "Category")
}

func (p *ProductsPage) DetailPrice(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.DetailPrice)
}

func (p *ProductsPage) DetailAvailability(ctx context.Context) (string, error) {
	return p.detail(ctx, p.sel.DetailAvailability, "Availability")
}

func (p *ProductsPage) DetailCondition(ctx context.Context) (string, error) {
	return p.detail(ctx, p.sel.DetailCondition, "Condition")
}

func (p *ProductsPage) DetailBrand(ctx context.Context) (string, error) {
	return p.detail(ctx, p.sel.DetailBrand, "Brand")
}

func (p *ProductsPage) SetQuantity(ctx context.Context, quantity int) error {
	p.Logger().Infof("Setting quantity to: %d", quantity)
	return p.FillInput(ctx, p.sel.Quantity, strconv.Itoa(quantity))
}

func (p *ProductsPage) AddToCartFromDetail(ctx context.Context) error {
	p.Logger().Info("Adding product to cart from detail page")
	if err := p.Click(ctx, p.sel.AddToCartDetail); err != nil {
		return err
	}
	return p.WaitForElementVisible(ctx, modalContent, 0)
}

func (p *ProductsPage) WriteReview(ctx context.Context, name, email, review string) error {
	p.Logger().Infof("Writing review as %s", name)
	if _, err := p.Evaluate(ctx, scrollToReviewJS, nil); err != nil {
		return err
	}
	for _, f := range []struct {
		sel   entities.Selector
		value string
	}{
		{p.sel.ReviewName, name},
		{p.sel.ReviewEmail, email},
		{p.sel.ReviewText, review},
	} {
		if err := p.FillInput(ctx, f.sel, f.value); err != nil {
			return err
		}
	}
	return p.Click(ctx, p.sel.SubmitReview)
}

func (p *ProductsPage) IsReviewSuccessful(ctx context.Context) bool {
	return p.IsElementVisible(ctx, p.sel.ReviewSuccess, 0)
}
