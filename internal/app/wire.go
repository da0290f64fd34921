//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/chaindeploy/internal/adapters/chain"
	"github.com/trebuchet-org/chaindeploy/internal/adapters/keystore"
	"github.com/trebuchet-org/chaindeploy/internal/adapters/progress"
	"github.com/trebuchet-org/chaindeploy/internal/adapters/solc"
	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/logging"
	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// InitApp creates a fully wired App instance.
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		logging.NewLogger,

		// Adapters
		solc.NewCompiler,
		wire.Bind(new(usecase.Compiler), new(*solc.Compiler)),
		keystore.NewResolver,
		wire.Bind(new(usecase.AccountResolver), new(*keystore.Resolver)),
		chain.NewFactory,
		wire.Bind(new(usecase.DeployerFactory), new(*chain.Factory)),
		progress.NewSink,

		// Use cases
		usecase.NewDeployContracts,
		usecase.NewPlanDeployment,

		NewApp,
	)
	return nil, nil
}
