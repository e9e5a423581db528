// Package playwrightdev holds the playwright.dev landing page.
package playwrightdev

import (
	"context"
	"strings"

	"pom_automation/application/pages"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

type exampleSelectors struct {
	Heading    entities.Selector
	GetStarted entities.Selector
}

var exampleLocators = exampleSelectors{
	Heading:    "h1",
	GetStarted: entities.HasText("a", "Get started"),
}

type ExamplePage struct {
	interfaces.ElementInteractions
	baseURL string
	sel     exampleSelectors
}

func NewExamplePage(cfg pages.Config, baseURL string) *ExamplePage {
	return &ExamplePage{
		ElementInteractions: pages.NewBase(cfg, "playwrightdev.example"),
		baseURL:             baseURL,
		sel:                 exampleLocators,
	}
}

// Open - path is appended to the site root, "" opens the landing page
func (p *ExamplePage) Open(ctx context.Context, path string) error {
	if err := p.Navigate(ctx, strings.TrimRight(p.baseURL, "/")+path); err != nil {
		return err
	}
	return p.WaitForPageLoad(ctx)
}

func (p *ExamplePage) Title(ctx context.Context) (string, error) {
	return p.GetPageTitle(ctx)
}

func (p *ExamplePage) Heading(ctx context.Context) (string, error) {
	return p.GetText(ctx, p.sel.Heading)
}

func (p *ExamplePage) ClickGetStarted(ctx context.Context) error {
	return p.ClickAndWait(ctx, p.sel.GetStarted)
}
