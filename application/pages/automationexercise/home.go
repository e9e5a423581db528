package automationexercise

import (
	"context"
	"slices"
	"strings"
	"time"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// categoryAnimation lets the sidebar panel finish expanding
const categoryAnimation = 500 * time.Millisecond

var parentCategories = []string{"Women", "Men", "Kids"}

type homeSelectors struct {
	ProductsLink      entities.Selector
	CartLink          entities.Selector
	LoginSignupLink   entities.Selector
	LoggedInAs        entities.Selector
	LogoutLink        entities.Selector
	DeleteAccountLink entities.Selector
	ProductCards      entities.Selector
	ProductCard       entities.IndexedSelector
	ProductName       entities.IndexedSelector
	ProductPrice      entities.IndexedSelector
	ViewProduct       entities.IndexedSelector
	AddToCart         entities.IndexedSelector
	CategoryToggle    entities.NamedSelector
	SubCategoryLink   func(parent, name string) entities.Selector
	CategoryLink      entities.NamedSelector
	BrandLink         entities.NamedSelector
	SubscriptionEmail entities.Selector
	SubscribeButton   entities.Selector
	Footer            entities.Selector
}

// product cards are the col-sm-4 divs after the section heading, so
// positions are counted by type rather than child index
var homeLocators = homeSelectors{
	ProductsLink:      `a[href="/products"]`,
	CartLink:          `a[href="/view_cart"]`,
	LoginSignupLink:   `a[href="/login"]`,
	LoggedInAs:        entities.HasText("a", "Logged in as"),
	LogoutLink:        `a[href="/logout"]`,
	DeleteAccountLink: `a[href="/delete_account"]`,
	ProductCards:      ".features_items .product-image-wrapper",
	ProductCard:       entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .product-image-wrapper"),
	ProductName:       entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .productinfo h2"),
	ProductPrice:      entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .productinfo p"),
	ViewProduct:       entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .choose a"),
	AddToCart:         entities.NthChild(".features_items .col-sm-4:nth-of-type(%d) .productinfo .btn"),
	CategoryToggle:    entities.Named(`a[href="#%s"]`),
	SubCategoryLink: func(parent, name string) entities.Selector {
		return entities.HasText(entities.Selector("#"+parent+" .panel-body a"), name)
	},
	CategoryLink:      func(name string) entities.Selector { return entities.HasText(".left-sidebar a", name) },
	BrandLink:         func(name string) entities.Selector { return entities.HasText(".brands-name ul li a", name) },
	SubscriptionEmail: "#susbscribe_email",
	SubscribeButton:   "#subscribe",
	Footer:            "footer",
}

type HomePage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     homeSelectors
}

func NewHomePage(cfg pages.Config, baseURL string) *HomePage {
	return &HomePage{
		ElementInteractions: pages.NewBase(cfg, "automationexercise.home"),
		baseURL:             baseURL,
		sel:                 homeLocators,
	}
}

func (p *HomePage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to Automation Exercise home page")
	return open(ctx, p, siteURL(p.baseURL, "/"))
}

func (p *HomePage) ClickProducts(ctx context.Context) error {
	p.Logger().Info("Clicking on Products link")
	return p.ClickAndWait(ctx, p.sel.ProductsLink)
}

func (p *HomePage) ClickCart(ctx context.Context) error {
	p.Logger().Info("Clicking on Cart link")
	return p.ClickAndWait(ctx, p.sel.CartLink)
}

func (p *HomePage) ClickLoginSignup(ctx context.Context) error {
	p.Logger().Info("Clicking on Login/Signup link")
	return p.ClickAndWait(ctx, p.sel.LoginSignupLink)
}

func (p *HomePage) SearchProduct(ctx context.Context, term string) error {
	return search(ctx, p, term)
}

func (p *HomePage) IsUserLoggedIn(ctx context.Context) bool {
	return p.IsElementVisible(ctx, p.sel.LoggedInAs, 0)
}

// LoggedInUsername - the name after "Logged in as", empty when logged out
func (p *HomePage) LoggedInUsername(ctx context.Context) (string, error) {
	if !p.IsUserLoggedIn(ctx) {
		return "", nil
	}
	text, err := p.GetText(ctx, p.sel.LoggedInAs)
	if err != nil {
		return "", err
	}
	_, name, _ := strings.Cut(text, "Logged in as")
	return strings.TrimSpace(name), nil
}

func (p *HomePage) Logout(ctx context.Context) error {
	p.Logger().Info("Logging out")
	return p.ClickAndWait(ctx, p.sel.LogoutLink)
}

func (p *HomePage) ProductCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.ProductCards)
}

func (p *HomePage) ProductName(ctx context.Context, i int) (string, error) {
	return p.GetText(ctx, p.sel.ProductName(i))
}

// ProductPrice - the raw label, e.g. "Rs. 500"
func (p *HomePage) ProductPrice(ctx context.Context, i int) (string, error) {
	return p.GetText(ctx, p.sel.ProductPrice(i))
}

func (p *HomePage) ViewProduct(ctx context.Context, i int) error {
	p.Logger().Infof("Viewing product at index %d", i)
	return p.ClickAndWait(ctx, p.sel.ViewProduct(i))
}

func (p *HomePage) AddProductToCart(ctx context.Context, i int) error {
	p.Logger().Infof("Adding product at index %d to cart", i)
	return addToCart(ctx, p, p.sel.ProductCard(i), p.sel.AddToCart(i))
}

func (p *HomePage) ContinueShopping(ctx context.Context) error {
	p.Logger().Info("Clicking Continue Shopping button")
	return p.Click(ctx, modalContinue)
}

func (p *HomePage) ViewCart(ctx context.Context) error {
	p.Logger().Info("Clicking View Cart button")
	return p.ClickAndWait(ctx, modalViewCart)
}

// ClickCategory - name is either a sidebar link ("Dress") or a
// "Parent > Child" path; the Women, Men and Kids panels are expanded first.
func (p *HomePage) ClickCategory(ctx context.Context, name string) error {
	p.Logger().Infof("Clicking on category: %s", name)

	parent, child, nested := strings.Cut(name, ">")
	if !nested {
		return p.ClickAndWait(ctx, p.sel.CategoryLink(strings.TrimSpace(name)))
	}
	parent, child = strings.TrimSpace(parent), strings.TrimSpace(child)

	if slices.Contains(parentCategories, parent) {
		if err := p.Click(ctx, p.sel.CategoryToggle(parent)); err != nil {
			return err
		}
		if err := pages.Pause(ctx, categoryAnimation); err != nil {
			return err
		}
	}
	return p.ClickAndWait(ctx, p.sel.SubCategoryLink(parent, child))
}

func (p *HomePage) ClickBrand(ctx context.Context, brand string) error {
	p.Logger().Infof("Clicking on brand: %s", brand)
	return p.ClickAndWait(ctx, p.sel.BrandLink(brand))
}

func (p *HomePage) SubscribeToNewsletter(ctx context.Context, email string) error {
	p.Logger().Infof("Subscribing to newsletter with email: %s", email)
	if err := p.FillInput(ctx, p.sel.SubscriptionEmail, email); err != nil {
		return err
	}
	if err := p.Click(ctx, p.sel.SubscribeButton); err != nil {
		return err
	}
	return p.WaitForElementVisible(ctx, successAlert, 0)
}

func (p *HomePage) IsSubscriptionSuccessful(ctx context.Context) bool {
	return p.IsElementVisible(ctx, successAlert, 0)
}

func (p *HomePage) ScrollToFooter(ctx context.Context) error {
	p.Logger().Info("Scrolling to footer")
	_, err := p.Evaluate(ctx, scrollToEndJS, nil)
	return err
}
