package security

import (
	"context"
	"slices"
	"strings"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

var (
	accountKeywords = []string{"register", "signup", "sign up", "delete account", "create account"}
	orderKeywords   = []string{"place order", "payment", "pay and confirm", "purchase"}
)

type SecurityLayer struct {
	logger logrus.FieldLogger
}

func NewSecurityLayer(logger logrus.FieldLogger) *SecurityLayer {
	return &SecurityLayer{
		logger: logger,
	}
}

func (s *SecurityLayer) RequiresApproval(ctx context.Context, scenario entities.ScenarioInfo) bool {
	if s.GetRiskLevel(ctx, scenario) != RiskHigh {
		return false
	}
	s.logger.Debugf("Scenario %s requires approval", scenario.Name)
	return true
}

// IsMutating - the scenario creates accounts or places orders
func (s *SecurityLayer) IsMutating(ctx context.Context, scenario entities.ScenarioInfo) bool {
	return s.createsAccount(scenario) || s.placesOrder(scenario)
}

func (s *SecurityLayer) GetRiskLevel(ctx context.Context, scenario entities.ScenarioInfo) string {
	if s.IsMutating(ctx, scenario) {
		return RiskHigh
	}
	if slices.Contains(scenario.Tags, entities.TagCart) {
		return RiskMedium
	}
	return RiskLow
}

func (s *SecurityLayer) createsAccount(scenario entities.ScenarioInfo) bool {
	return slices.Contains(scenario.Tags, entities.TagAccount) || mentions(scenario, accountKeywords)
}

func (s *SecurityLayer) placesOrder(scenario entities.ScenarioInfo) bool {
	return slices.Contains(scenario.Tags, entities.TagOrder) || mentions(scenario, orderKeywords)
}

// mentions - any keyword appears in the name or description
func mentions(scenario entities.ScenarioInfo, keywords []string) bool {
	text := strings.ToLower(scenario.Name + " " + scenario.Description)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Ensure SecurityLayer implements ScenarioGuard interface
var _ interfaces.ScenarioGuard = (*SecurityLayer)(nil)
