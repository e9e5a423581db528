// Package scenarios holds the end-to-end flows run against the live demo
// sites. A scenario only talks to page objects; the same function runs
// under go test and under the CLI runner.
package scenarios

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/application/testctx"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
	"pom_automation/infrastructure/testdata"

	"github.com/sirupsen/logrus"
)

// T is the part of testing.TB scenarios use. FailNow and Skipf must not
// return, as with *testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
	Logf(format string, args ...any)
	Skipf(format string, args ...any)
}

// Env is everything a scenario may touch. Driver is a fresh session owned
// by whoever built the Env.
type Env struct {
	Ctx         context.Context
	Driver      interfaces.Driver
	Pages       pages.Config
	Sites       map[entities.Site]string
	Credentials interfaces.CredentialStore
	Data        *testdata.Generator
	Logger      logrus.FieldLogger
	TC          *testctx.TestContext
}

// URL returns the base URL of site
func (e *Env) URL(site entities.Site) string {
	return e.Sites[site]
}

type Scenario struct {
	entities.ScenarioInfo
	Run func(t T, env *Env)
}

// All returns every scenario, grouped by site in a stable order
func All() []Scenario {
	return slices.Concat(
		sauceScenarios(),
		automationExerciseScenarios(),
		orangeHRMScenarios(),
		playwrightDevScenarios(),
	)
}

// BySite returns the scenarios of one site
func BySite(site entities.Site) []Scenario {
	var out []Scenario
	for _, s := range All() {
		if s.Site == site {
			out = append(out, s)
		}
	}
	return out
}

// Find resolves names to scenarios, in the order given. A name that is a
// site selects all of that site's scenarios.
func Find(names ...string) ([]Scenario, error) {
	all := All()
	var (
		out     []Scenario
		unknown []string
	)
	for _, name := range names {
		if slices.Contains(entities.Sites, entities.Site(name)) {
			out = append(out, BySite(entities.Site(name))...)
			continue
		}
		i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
		if i < 0 {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, all[i])
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown scenario: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

// Infos lists the metadata of scenarios
func Infos(list []Scenario) []entities.ScenarioInfo {
	infos := make([]entities.ScenarioInfo, len(list))
	for i, s := range list {
		infos[i] = s.ScenarioInfo
	}
	return infos
}
