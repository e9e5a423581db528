package scenarios

import (
	"pom_automation/application/pages/playwrightdev"
	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playwrightDevScenarios() []Scenario {
	return []Scenario{
		{
			ScenarioInfo: entities.ScenarioInfo{
				Name:        "playwrightdev/title",
				Site:        entities.SitePlaywrightDev,
				Description: "Landing page title mentions Playwright",
			},
			Run: playwrightDevTitle,
		},
	}
}

func playwrightDevTitle(t T, env *Env) {
	page := playwrightdev.NewExamplePage(env.Pages, env.URL(entities.SitePlaywrightDev))
	require.NoError(t, page.Open(env.Ctx, ""))

	title, err := page.Title(env.Ctx)
	require.NoError(t, err)
	assert.Contains(t, title, "Playwright")
	_, _ = env.TC.LogPageInfo(env.Ctx)
}
