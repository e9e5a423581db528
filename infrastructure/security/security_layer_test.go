package security

import (
	"context"
	"io"
	"testing"

	"pom_automation/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRiskLevels(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewSecurityLayer(logger)
	ctx := context.Background()

	tests := []struct {
		name     string
		scenario entities.ScenarioInfo
		risk     string
		approval bool
	}{
		{
			name:     "tagged account",
			scenario: entities.ScenarioInfo{Name: "ae/register-user", Tags: []string{entities.TagAccount}},
			risk:     RiskHigh,
			approval: true,
		},
		{
			name:     "order keyword in description",
			scenario: entities.ScenarioInfo{Name: "ae/checkout", Description: "Pay and confirm an order as a registered user"},
			risk:     RiskHigh,
			approval: true,
		},
		{
			name:     "cart state only",
			scenario: entities.ScenarioInfo{Name: "ae/cart-total", Tags: []string{entities.TagCart}},
			risk:     RiskMedium,
		},
		{
			name:     "read only",
			scenario: entities.ScenarioInfo{Name: "sauce/sort-az", Description: "Sort products by name"},
			risk:     RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.risk, s.GetRiskLevel(ctx, tt.scenario))
			assert.Equal(t, tt.approval, s.RequiresApproval(ctx, tt.scenario))
			assert.Equal(t, tt.risk == RiskHigh, s.IsMutating(ctx, tt.scenario))
		})
	}
}
