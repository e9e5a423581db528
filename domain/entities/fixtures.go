package entities

// PersonName is a randomly generated first/last name pair
type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Full returns "First Last"
func (n PersonName) Full() string {
	return n.FirstName + " " + n.LastName
}

// PostalAddress is a generated street address
type PostalAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// CreditCard holds test card data; the numbers are well-known test PANs.
type CreditCard struct {
	CardNumber  string `json:"cardNumber"`
	NameOnCard  string `json:"nameOnCard"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// User is a generic account fixture
type User struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Subscription    string `json:"subscription,omitempty"`
	PaymentVerified bool   `json:"paymentVerified,omitempty"`
}
