package orangehrm

import (
	"context"
	"testing"

	"pom_automation/application/pages/pagetest"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginForm(d *pagetest.FakeDriver) {
	for _, sel := range []entities.Selector{loginLocators.Username, loginLocators.Password, loginLocators.LoginButton} {
		d.Set(sel, &pagetest.Element{})
	}
}

func TestValidLoginShowsDashboard(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	loginForm(d)
	d.On("click", loginLocators.LoginButton, func(d *pagetest.FakeDriver) {
		d.SetTexts(loginLocators.Dashboard, "Dashboard")
		d.SetTexts(loginLocators.Breadcrumb, "Dashboard")
	})

	p := NewLoginPage(cfg, "https://opensource-demo.orangehrmlive.com/")
	require.NoError(t, p.Open(ctx))
	assert.False(t, p.IsDashboardVisible(ctx))

	require.NoError(t, p.Login(ctx, "Admin", "admin123"))
	assert.True(t, p.IsDashboardVisible(ctx))
	crumb, err := p.Breadcrumb(ctx)
	require.NoError(t, err)
	assert.Contains(t, crumb, "Dashboard")
}

func TestInvalidLoginShowsError(t *testing.T) {
	ctx := context.Background()
	cfg, d, _ := newConfig(t)
	loginForm(d)
	d.On("click", loginLocators.LoginButton, func(d *pagetest.FakeDriver) {
		d.SetTexts(loginLocators.Error, "Invalid credentials")
	})

	p := NewLoginPage(cfg, "https://opensource-demo.orangehrmlive.com/")
	require.NoError(t, p.Login(ctx, "Admin", "wrongpassword"))
	msg, err := p.ErrorMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestErrorMessageAbsent(t *testing.T) {
	cfg, _, _ := newConfig(t)
	_, err := NewLoginPage(cfg, "").ErrorMessage(context.Background())
	assert.ErrorIs(t, err, entities.ErrElementNotFound)
}
