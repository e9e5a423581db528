// Package orangehrm holds the OrangeHRM demo login page.
package orangehrm

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
	Dashboard   entities.Selector
	Breadcrumb  entities.Selector
}

var loginLocators = loginSelectors{
	Username:    `input[name="username"]`,
	Password:    `input[name="password"]`,
	LoginButton: `button[type="submit"]`,
	Error:       ".oxd-alert-content-text",
	Dashboard:   ".oxd-topbar-header-title",
	Breadcrumb:  ".oxd-topbar-header-breadcrumb",
}

type LoginPage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     loginSelectors
}

func NewLoginPage(cfg pages.Config, baseURL string) *LoginPage {
	return &LoginPage{
		ElementInteractions: pages.NewBase(cfg, "orangehrm.login"),
		baseURL:             baseURL,
		sel:                 loginLocators,
	}
}

func (p *LoginPage) Open(ctx context.Context) error {
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

// ErrorMessage - waits for the alert since it renders after the request
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	if err := p.WaitForElementVisible(ctx, p.sel.Error, 0); err != nil {
		return "", err
	}
	return p.GetText(ctx, p.sel.Error)
}

func (p *LoginPage) IsDashboardVisible(ctx context.Context) bool {
	return p.IsElementVisible(ctx, p.sel.Dashboard, 0)
}

func (p *LoginPage) Breadcrumb(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Breadcrumb)
}
