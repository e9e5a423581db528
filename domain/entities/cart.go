package entities

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	dollarPattern = regexp.MustCompile(`\$(\d+\.\d+)`)
)

// ParseAmount extracts the first number from a scraped price label such as
// "Rs. 500", "$29.99" or "Item total: $29.99". Thousands separators are ignored.
func ParseAmount(text string) (float64, error) {
	m := amountPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, fmt.Errorf("no amount in %q", text)
	}
	return strconv.ParseFloat(m, 64)
}

// DollarAmount returns the first "$N.NN" value in text, or 0 when there is none.
func DollarAmount(text string) float64 {
	m := dollarPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// CartItem is one row of the cart table as displayed. Price and Total keep
// the raw label text; use PriceValue/TotalValue for arithmetic.
type CartItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// PriceValue - numeric unit price
func (c CartItem) PriceValue() (float64, error) {
	return ParseAmount(c.Price)
}

// TotalValue - numeric line total
func (c CartItem) TotalValue() (float64, error) {
	return ParseAmount(c.Total)
}

// Consistent reports whether total == price * quantity within tolerance.
func (c CartItem) Consistent(tolerance float64) (bool, error) {
	price, err := c.PriceValue()
	if err != nil {
		return false, err
	}
	total, err := c.TotalValue()
	if err != nil {
		return false, err
	}
	return math.Abs(total-price*float64(c.Quantity)) <= tolerance, nil
}

// CartSum adds price * quantity over items.
func CartSum(items []CartItem) (float64, error) {
	var sum float64
	for _, item := range items {
		price, err := item.PriceValue()
		if err != nil {
			return 0, fmt.Errorf("item %q: %w", item.Name, err)
		}
		sum += price * float64(item.Quantity)
	}
	return sum, nil
}

// OrderItem is one row of the order review table on checkout.
type OrderItem = CartItem

// AddressDetails is an address block as rendered on the checkout page
type AddressDetails struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zipcode  string `json:"zipcode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// PaymentDetails is what the payment form accepts
type PaymentDetails struct {
	NameOnCard  string `json:"nameOnCard"`
	CardNumber  string `json:"cardNumber"`
	CVC         string `json:"cvc"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
}

// DateOfBirth uses the option values of the signup dropdowns ("10", "5", "1995").
type DateOfBirth struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// AccountInfo is the "Enter Account Information" section of signup
type AccountInfo struct {
	Title         string      `json:"title"` // Mr or Mrs
	Password      string      `json:"password"`
	DateOfBirth   DateOfBirth `json:"dateOfBirth"`
	Newsletter    bool        `json:"newsletter"`
	SpecialOffers bool        `json:"specialOffers"`
}

// AddressInfo is the address section of signup
type AddressInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Company      string `json:"company,omitempty"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2,omitempty"`
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	Zipcode      string `json:"zipcode"`
	MobileNumber string `json:"mobileNumber"`
}

// ProductDetails is what a scenario remembers about a product for later checks
type ProductDetails struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity,omitempty"`
}
