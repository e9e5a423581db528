// Package sauce holds the page objects for the Sauce Demo store.
package sauce

import (
	"context"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type loginSelectors struct {
	Username    entities.Selector
	Password    entities.Selector
	LoginButton entities.Selector
	Error       entities.Selector
}

var loginLocators = loginSelectors{
	Username:    `[data-test="username"]`,
	Password:    `[data-test="password"]`,
	LoginButton: `[data-test="login-button"]`,
	Error:       `[data-test="error"]`,
}

type LoginPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     loginSelectors
}

func NewLoginPage(cfg pages.Config, baseURL string) *LoginPage {
	return &LoginPage{
		ElementInteractions: pages.NewBase(cfg, "sauce.login"),
		baseURL:             baseURL,
		sel:                 loginLocators,
	}
}

// Open - navigates to the login page
func (p *LoginPage) Open(ctx context.Context) error {
	p.Logger().Info("Navigating to the login page")
	if err := p.Navigate(ctx, p.baseURL); err != nil {
		return err
	}
	return p.WaitForPageLoad(ctx)
}

func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	p.Logger().Infof("Logging in with username: %s", username)
	if err := p.FillInput(ctx, p.sel.Username, username); err != nil {
		return err
	}
	if err := p.FillInput(ctx, p.sel.Password, password); err != nil {
		return err
	}
	return p.ClickAndWait(ctx, p.sel.LoginButton)
}

func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Error)
}

// IsErrorMessageDisplayed - waits briefly for the error banner
func (p *LoginPage) IsErrorMessageDisplayed(ctx context.Context) bool {
	return p.IsElementVisible(ctx, p.sel.Error, p.Timeouts().ErrorProbe)
}
