package usecase

import (
	"context"

	"github.com/trebuchet-org/chaindeploy/internal/config"
)

// PlanDeploymentResult contains the linearized execution plan.
type PlanDeploymentResult struct {
	Plan  *DeployPlan
	Steps []*Component
}

// PlanDeployment resolves and linearizes the deployment plan without
// touching the chain.
type PlanDeployment struct {
	cfg *config.RuntimeConfig
}

// NewPlanDeployment creates a new PlanDeployment use case.
func NewPlanDeployment(cfg *config.RuntimeConfig) *PlanDeployment {
	return &PlanDeployment{cfg: cfg}
}

// Run resolves the plan and returns its execution order.
func (uc *PlanDeployment) Run(ctx context.Context) (*PlanDeploymentResult, error) {
	plan, err := ResolvePlan(uc.cfg)
	if err != nil {
		return nil, err
	}

	steps, err := plan.TopologicalSort()
	if err != nil {
		return nil, err
	}

	return &PlanDeploymentResult{Plan: plan, Steps: steps}, nil
}
