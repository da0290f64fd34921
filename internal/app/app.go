package app

import (
	"log/slog"

	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// App is the application container holding the wired use cases.
type App struct {
	Config *config.RuntimeConfig
	Logger *slog.Logger

	DeployContracts *usecase.DeployContracts
	PlanDeployment  *usecase.PlanDeployment
}

// NewApp creates a new application instance.
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	deployContracts *usecase.DeployContracts,
	planDeployment *usecase.PlanDeployment,
) *App {
	return &App{
		Config:          cfg,
		Logger:          logger,
		DeployContracts: deployContracts,
		PlanDeployment:  planDeployment,
	}
}
