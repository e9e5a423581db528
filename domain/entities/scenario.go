package entities

// Site identifies one of the target web applications
type Site string

const (
	SiteSauceDemo          Site = "saucedemo"
	SiteAutomationExercise Site = "automationexercise"
	SiteOrangeHRM          Site = "orangehrm"
	SitePlaywrightDev      Site = "playwrightdev"
)

// Sites lists every known target
var Sites = []Site{SiteSauceDemo, SiteAutomationExercise, SiteOrangeHRM, SitePlaywrightDev}

// ScenarioInfo describes a registered end-to-end scenario
type ScenarioInfo struct {
	Name        string   `json:"name"`
	Site        Site     `json:"site"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// Scenario tags that mark side effects on the target site
const (
	TagAccount = "account" // creates or deletes a user
	TagOrder   = "order"   // places an order
	TagCart    = "cart"    // leaves server-side cart state behind
)
