package automationexercise

import (
	"context"
	"fmt"
	"strconv"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type addressSelectors struct {
	Name     entities.Selector
	Company  entities.Selector
	Address1 entities.Selector
	City     entities.Selector
	State    entities.Selector
	Zipcode  entities.Selector
	Country  entities.Selector
	Phone    entities.Selector
}

// addressBlock - the three street lines share a class and are told apart
// by position; city, state and postcode share one line.
func addressBlock(root string) addressSelectors {
	sel := func(s string) entities.Selector { return entities.Selector(root + " " + s) }
	return addressSelectors{
		Name:     sel(".address_firstname.address_lastname"),
		Company:  sel("li.address_address1:nth-of-type(3)"),
		Address1: sel("li.address_address1:nth-of-type(4)"),
		City:     sel(".address_city"),
		State:    sel(".address_state_name"),
		Zipcode:  sel(".address_postcode"),
		Country:  sel(".address_country_name"),
		Phone:    sel(".address_phone"),
	}
}

type checkoutSelectors struct {
	Delivery       addressSelectors
	Billing        addressSelectors
	OrderRows      entities.Selector
	OrderItemName  entities.IndexedSelector
	OrderItemPrice entities.IndexedSelector
	OrderItemQty   entities.IndexedSelector
	OrderItemTotal entities.IndexedSelector
	OrderTotal     entities.Selector
	Comment        entities.Selector
	PlaceOrder     entities.Selector
	NameOnCard     entities.Selector
	CardNumber     entities.Selector
	CVC            entities.Selector
	ExpiryMonth    entities.Selector
	ExpiryYear     entities.Selector
	PayButton      entities.Selector
	SuccessMessage entities.Selector
	Invoice        entities.Selector
	Continue       entities.Selector
}

var checkoutLocators = checkoutSelectors{
	Delivery:       addressBlock("#address_delivery"),
	Billing:        addressBlock("#address_invoice"),
	OrderRows:      `#cart_info tbody tr[id^="product-"]`,
	OrderItemName:  entities.NthChild("#cart_info tbody tr:nth-child(%d) td:nth-child(2) h4"),
	OrderItemPrice: entities.NthChild("#cart_info tbody tr:nth-child(%d) td:nth-child(3) p"),
	OrderItemQty:   entities.NthChild("#cart_info tbody tr:nth-child(%d) td:nth-child(4) button"),
	OrderItemTotal: entities.NthChild("#cart_info tbody tr:nth-child(%d) td:nth-child(5) p"),
	OrderTotal:     "#cart_info tbody tr:last-child p.cart_total_price",
	Comment:        `textarea[name="message"]`,
	PlaceOrder:     ".check_out",
	NameOnCard:     `input[name="name_on_card"]`,
	CardNumber:     `input[name="card_number"]`,
	CVC:            `input[name="cvc"]`,
	ExpiryMonth:    `input[name="expiry_month"]`,
	ExpiryYear:     `input[name="expiry_year"]`,
	PayButton:      "#submit",
	SuccessMessage: `h2[data-qa="order-placed"]`,
	Invoice:        ".btn.btn-default.check_out",
	Continue:       `a[data-qa="continue-button"]`,
}

// CheckoutPage covers address review, payment and the order-placed page
type CheckoutPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     checkoutSelectors
}

func NewCheckoutPage(cfg pages.Config, baseURL string) *CheckoutPage {
	return &CheckoutPage{
		ElementInteractions: pages.NewBase(cfg, "automationexercise.checkout"),
		baseURL:             baseURL,
		sel:                 checkoutLocators,
	}
}

func (p *CheckoutPage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to Checkout page")
	return open(ctx, p, siteURL(p.baseURL, "/checkout"))
}

func (p *CheckoutPage) address(ctx context.Context, sel addressSelectors) (entities.AddressDetails, error) {
	var (
		a   entities.AddressDetails
		err error
	)
	for _, f := range []struct {
		dst *string
		sel entities.Selector
	}{
		{&a.Name, sel.Name},
		{&a.Company, sel.Company},
		{&a.Address1, sel.Address1},
		{&a.City, sel.City},
		{&a.State, sel.State},
		{&a.Zipcode, sel.Zipcode},
		{&a.Country, sel.Country},
		{&a.Phone, sel.Phone},
	} {
		if *f.dst, err = p.GetText(ctx, f.sel); err != nil {
			return entities.AddressDetails{}, err
		}
	}
	return a, nil
}

func (p *CheckoutPage) DeliveryAddress(ctx context.Context) (entities.AddressDetails, error) {
	p.Logger().Info("Getting delivery address details")
	return p.address(ctx, p.sel.Delivery)
}

func (p *CheckoutPage) BillingAddress(ctx context.Context) (entities.AddressDetails, error) {
	p.Logger().Info("Getting billing address details")
	return p.address(ctx, p.sel.Billing)
}

func (p *CheckoutPage) OrderItemCount(ctx context.Context) (int, error) {
	return p.Count(ctx, p.sel.OrderRows)
}

func (p *CheckoutPage) OrderItemDetails(ctx context.Context) ([]entities.OrderItem, error) {
	n, err := p.OrderItemCount(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]entities.OrderItem, 0, n)
	for i := range n {
		var (
			item entities.OrderItem
			qty  string
		)
		if item.Name, err = p.GetText(ctx, p.sel.OrderItemName(i)); err != nil {
			return nil, err
		}
		if qty, err = p.GetText(ctx, p.sel.OrderItemQty(i)); err != nil {
			return nil, err
		}
		if item.Quantity, err = strconv.Atoi(qty); err != nil {
			return nil, fmt.Errorf("order row %d quantity %q: %w", i, qty, err)
		}
		if item.Price, err = p.GetText(ctx, p.sel.OrderItemPrice(i)); err != nil {
			return nil, err
		}
		if item.Total, err = p.GetText(ctx, p.sel.OrderItemTotal(i)); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *CheckoutPage) OrderTotal(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.OrderTotal)
}

func (p *CheckoutPage) AddComment(ctx context.Context, comment string) error {
	p.Logger().Infof("Adding comment: %s", comment)
	return p.FillInput(ctx, p.sel.Comment, comment)
}

func (p *CheckoutPage) PlaceOrder(ctx context.Context) error {
	p.Logger().Info("Placing order")
	return p.ClickAndWait(ctx, p.sel.PlaceOrder)
}

func (p *CheckoutPage) FillPaymentDetails(ctx context.Context, d entities.PaymentDetails) error {
	p.Logger().Info("Filling payment details")
	for _, f := range []struct {
		sel   entities.Selector
		value string
	}{
		{p.sel.NameOnCard, d.NameOnCard},
		{p.sel.CardNumber, d.CardNumber},
		{p.sel.CVC, d.CVC},
		{p.sel.ExpiryMonth, d.ExpiryMonth},
		{p.sel.ExpiryYear, d.ExpiryYear},
	} {
		if err := p.FillInput(ctx, f.sel, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *CheckoutPage) ConfirmPayment(ctx context.Context) error {
	p.Logger().Info("Confirming payment")
	return p.ClickAndWait(ctx, p.sel.PayButton)
}

func (p *CheckoutPage) SuccessMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.SuccessMessage)
}

// DownloadInvoice saves the invoice into dir (the configured download
// directory when empty) and returns the file path.
func (p *CheckoutPage) DownloadInvoice(ctx context.Context, dir string) (string, error) {
	p.Logger().Info("Downloading invoice")
	path, err := p.Download(ctx, p.sel.Invoice, dir)
	if err != nil {
		return "", err
	}
	p.Logger().Infof("Invoice saved to %s", path)
	return path, nil
}

func (p *CheckoutPage) ContinueShopping(ctx context.Context) error {
	p.Logger().Info("Continuing shopping after order")
	return p.ClickAndWait(ctx, p.sel.Continue)
}
