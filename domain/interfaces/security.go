package interfaces

import (
	"context"

	"pom_automation/domain/entities"
)

// ScenarioGuard decides which scenarios need an explicit go-ahead because
// they create accounts or place orders on live third-party sites
type ScenarioGuard interface {
	// RequiresApproval checks if a scenario requires user approval
	RequiresApproval(ctx context.Context, scenario entities.ScenarioInfo) bool

	// IsMutating checks if a scenario writes data on the target site
	IsMutating(ctx context.Context, scenario entities.ScenarioInfo) bool

	// GetRiskLevel returns low, medium or high
	GetRiskLevel(ctx context.Context, scenario entities.ScenarioInfo) string
}
