package scenarios

import (
	"pom_automation/application/pages/orangehrm"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	orangeHRMUser     = "Admin"
	orangeHRMPassword = "admin123"
)

func orangeHRMScenarios() []Scenario {
	return []Scenario{
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "orangehrm/valid-login",
				Site:        entities.SiteOrangeHRM,
				Description: "Demo admin logs in and sees the dashboard",
			},
			Run: orangeHRMValidLogin,
		},
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "orangehrm/invalid-credentials",
				Site:        entities.SiteOrangeHRM,
				Description: "Wrong password shows Invalid credentials",
			},
			Run: orangeHRMInvalidLogin,
		},
	}
}

func orangeHRMLogin(t T, env *Env, password string) *orangehrm.LoginPage {
	t.Helper()
	login := orangehrm.NewLoginPage(env.Pages, env.URL(entities.SiteOrangeHRM))
	require.NoError(t, login.Open(env.Ctx))
	require.NoError(t, login.Login(env.Ctx, orangeHRMUser, password))
	return login
}

func orangeHRMValidLogin(t T, env *Env) {
	login := orangeHRMLogin(t, env, orangeHRMPassword)
	require.True(t, login.IsDashboardVisible(env.Ctx))

	crumb, err := login.Breadcrumb(env.Ctx)
	require.NoError(t, err)
	assert.Contains(t, crumb, "Dashboard")
}

func orangeHRMInvalidLogin(t T, env *Env) {
	login := orangeHRMLogin(t, env, "wrongpassword")
	msg, err := login.ErrorMessage(env.Ctx)
	require.NoError(t, err)
	assert.Contains(t, msg, "Invalid credentials")
}
