package automationexercise

import (
	"context"
	"fmt"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// DefaultCountry is what Register selects in the country dropdown
const DefaultCountry = "United States"

// DefaultBirthDate - option values of the day, month and year dropdowns
var DefaultBirthDate = entities.DateOfBirth{Day: "10", Month: "5", Year: "1995"}

type loginSelectors struct {
	LoginEmail        entities.Selector
	LoginPassword     entities.Selector
	LoginButton       entities.Selector
	LoginError        entities.Selector
	SignupName        entities.Selector
	SignupEmail       entities.Selector
	SignupButton      entities.Selector
	SignupError       entities.Selector
	AccountInfoTitle  entities.Selector
	TitleMr           entities.Selector
	TitleMrs          entities.Selector
	Password          entities.Selector
	BirthDay          entities.Selector
	BirthMonth        entities.Selector
	BirthYear         entities.Selector
	Newsletter        entities.Selector
	SpecialOffers     entities.Selector
	FirstName         entities.Selector
	LastName          entities.Selector
	Company           entities.Selector
	Address1          entities.Selector
	Address2          entities.Selector
	Country           entities.Selector
	State             entities.Selector
	City              entities.Selector
	Zipcode           entities.Selector
	MobileNumber      entities.Selector
	CreateAccount     entities.Selector
	AccountCreated    entities.Selector
	AccountDeleted    entities.Selector
	DeleteAccountLink entities.Selector
	ContinueButton    entities.Selector
}

var loginLocators = loginSelectors{
	LoginEmail:        `input[data-qa="login-email"]`,
	LoginPassword:     `input[data-qa="login-password"]`,
	LoginButton:       `button[data-qa="login-button"]`,
	LoginError:        ".login-form p",
	SignupName:        `input[data-qa="signup-name"]`,
	SignupEmail:       `input[data-qa="signup-email"]`,
	SignupButton:      `button[data-qa="signup-button"]`,
	SignupError:       ".signup-form p",
	AccountInfoTitle:  ".login-form h2.title",
	TitleMr:           "#id_gender1",
	TitleMrs:          "#id_gender2",
	Password:          `input[data-qa="password"]`,
	BirthDay:          `select[data-qa="days"]`,
	BirthMonth:        `select[data-qa="months"]`,
	BirthYear:         `select[data-qa="years"]`,
	Newsletter:        "#newsletter",
	SpecialOffers:     "#optin",
	FirstName:         `input[data-qa="first_name"]`,
	LastName:          `input[data-qa="last_name"]`,
	Company:           `input[data-qa="company"]`,
	Address1:          `input[data-qa="address"]`,
	Address2:          `input[data-qa="address2"]`,
	Country:           `select[data-qa="country"]`,
	State:             `input[data-qa="state"]`,
	City:              `input[data-qa="city"]`,
	Zipcode:           `input[data-qa="zipcode"]`,
	MobileNumber:      `input[data-qa="mobile_number"]`,
	CreateAccount:     `button[data-qa="create-account"]`,
	AccountCreated:    `h2[data-qa="account-created"]`,
	AccountDeleted:    `h2[data-qa="account-deleted"]`,
	DeleteAccountLink: `a[href="/delete_account"]`,
	ContinueButton:    `a[data-qa="continue-button"]`,
}

// LoginPage - the combined login and signup page plus the account forms
// reached from it
type LoginPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     loginSelectors
}

func NewLoginPage(cfg pages.Config, baseURL string) *LoginPage {
	return &LoginPage{
		ElementInteractions: pages.NewBase(cfg, "automationexercise.login"),
		baseURL:             baseURL,
		sel:                 loginLocators,
	}
}

func (p *LoginPage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to Login page")
	return open(ctx, p, siteURL(p.baseURL, "/login"))
}

func (p *LoginPage) Login(ctx context.Context, email, password string) error {
	p.Logger().Infof("Logging in with email: %s", email)
	if err := p.FillInput(ctx, p.sel.LoginEmail, email); err != nil {
		return err
	}
	if err := p.FillInput(ctx, p.sel.LoginPassword, password); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, p.sel.LoginButton)
}

func (p *LoginPage) LoginErrorMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.LoginError)
}

func (p *LoginPage) Signup(ctx context.Context, name, email string) error {
	p.Logger().Infof("Signing up with name: %s and email: %s", name, email)
	if err := p.FillInput(ctx, p.sel.SignupName, name); err != nil {
		return err
	}
	if err := p.FillInput(ctx, p.sel.SignupEmail, email); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, p.sel.SignupButton)
}

func (p *LoginPage) SignupErrorMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.SignupError)
}

// AccountInfoTitle - "ENTER ACCOUNT INFORMATION" once signup succeeds
func (p *LoginPage) AccountInfoTitle(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.AccountInfoTitle)
}

func (p *LoginPage) FillAccountInformation(ctx context.Context, info entities.AccountInfo) error {
	p.Logger().Info("Filling account information")

	title := p.sel.TitleMrs
	if info.Title == "Mr" {
		title = p.sel.TitleMr
	}
	if err := p.SetCheckbox(ctx, title, true); err != nil {
		return err
	}
	if err := p.FillInput(ctx, p.sel.Password, info.Password); err != nil {
		return err
	}

	dob := []struct {
		sel   entities.Selector
		value string
	}{
		{p.sel.BirthDay, info.DateOfBirth.Day},
		{p.sel.BirthMonth, info.DateOfBirth.Month},
		{p.sel.BirthYear, info.DateOfBirth.Year},
	}
	for _, d := range dob {
		if err := p.SelectOption(ctx, d.sel, d.value); err != nil {
			return err
		}
	}

	if info.Newsletter {
		if err := p.SetCheckbox(ctx, p.sel.Newsletter, true); err != nil {
			return err
		}
	}
	if info.SpecialOffers {
		if err := p.SetCheckbox(ctx, p.sel.SpecialOffers, true); err != nil {
			return err
		}
	}
	return nil
}

// FillAddressInformation - Company and Address2 are skipped when empty
func (p *LoginPage) FillAddressInformation(ctx context.Context, addr entities.AddressInfo) error {
	p.Logger().Info("Filling address information")

	fields := []struct {
		sel      entities.Selector
		value    string
		optional bool
	}{
		{p.sel.FirstName, addr.FirstName, false},
		{p.sel.LastName, addr.LastName, false},
		{p.sel.Company, addr.Company, true},
		{p.sel.Address1, addr.Address1, false},
		{p.sel.Address2, addr.Address2, true},
	}
	for _, f := range fields {
		if f.optional && f.value == "" {
			continue
		}
		if err := p.FillInput(ctx, f.sel, f.value); err != nil {
			return err
		}
	}

	if err := p.SelectOption(ctx, p.sel.Country, addr.Country); err != nil {
		return err
	}
	for _, f := range []struct {
		sel   entities.Selector
		value string
	}{
		{p.sel.State, addr.State},
		{p.sel.City, addr.City},
		{p.sel.Zipcode, addr.Zipcode},
		{p.sel.MobileNumber, addr.MobileNumber},
	} {
		if err := p.FillInput(ctx, f.sel, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *LoginPage) CreateAccount(ctx context.Context) error {
	p.Logger().Info("Creating account")
	return p.ClickAndWait(ctx, p.sel.CreateAccount)
}

func (p *LoginPage) AccountCreatedMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.AccountCreated)
}

func (p *LoginPage) ContinueAfterAccountCreation(ctx context.Context) error {
	p.Logger().Info("Continuing after account creation")
	return p.ClickAndWait(ctx, p.sel.ContinueButton)
}

// Register runs the whole signup flow for identity and leaves the browser
// logged in on the home page.
func (p *LoginPage) Register(ctx context.Context, identity entities.Credentials, address entities.PostalAddress, phone string) error {
	p.Logger().Infof("Registering new user: %s / %s", identity.Name, identity.Email)

	if err := p.Signup(ctx, identity.Name, identity.Email); err != nil {
		return err
	}
	title, err := p.AccountInfoTitle(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(title), "ENTER ACCOUNT INFORMATION") {
		return fmt.Errorf("signup for %s did not reach the account form: %q", identity.Email, title)
	}

	err = p.FillAccountInformation(ctx, entities.AccountInfo{
		Title:         "Mr",
		Password:      identity.Password,
		DateOfBirth:   DefaultBirthDate,
		Newsletter:    true,
		SpecialOffers: true,
	})
	if err != nil {
		return err
	}

	first, last := splitName(identity.Name)
	err = p.FillAddressInformation(ctx, entities.AddressInfo{
		FirstName:    first,
		LastName:     last,
		Address1:     address.Street,
		Country:      DefaultCountry,
		State:        address.State,
		City:         address.City,
		Zipcode:      address.ZipCode,
		MobileNumber: phone,
	})
	if err != nil {
		return err
	}

	if err := p.CreateAccount(ctx); err != nil {
		return err
	}
	msg, err := p.AccountCreatedMessage(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(msg), "ACCOUNT CREATED") {
		return fmt.Errorf("account for %s not created: %q", identity.Email, msg)
	}
	return p.ContinueAfterAccountCreation(ctx)
}

// DeleteAccount removes the logged-in account and returns to the home page
func (p *LoginPage) DeleteAccount(ctx context.Context) error {
	p.Logger().Info("Deleting account")
	if err := p.ClickAndWait(ctx, p.sel.DeleteAccountLink); err != nil {
		return err
	}
	if err := p.WaitForElementVisible(ctx, p.sel.AccountDeleted, 0); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, p.sel.ContinueButton)
}

// splitName - "Test User 123" gives ("Test", "User"); a single word gets "User"
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", "User"
	case 1:
		return parts[0], "User"
	}
	return parts[0], parts[1]
}
