package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

// DeployContractsResult contains the outcome of a full deployment run.
type DeployContractsResult struct {
	// Addresses maps every deployed contract reference to its EIP-55
	// checksum address.
	Addresses map[string]string

	// Deployed lists per-contract deployment details in execution order.
	Deployed []*domain.DeployedContract

	Plan *DeployPlan
}

// DeployContracts is the use case that drives a full deployment run:
// resolve the account, compile the plan's sources, deploy each component in
// dependency order, and accumulate the address map.
type DeployContracts struct {
	cfg       *config.RuntimeConfig
	compiler  Compiler
	accounts  AccountResolver
	deployers DeployerFactory
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployContracts creates a new DeployContracts use case.
func NewDeployContracts(
	cfg *config.RuntimeConfig,
	compiler Compiler,
	accounts AccountResolver,
	deployers DeployerFactory,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContracts {
	return &DeployContracts{
		cfg:       cfg,
		compiler:  compiler,
		accounts:  accounts,
		deployers: deployers,
		sink:      sink,
		log:       log,
	}
}

// Run executes the deployment run.
func (uc *DeployContracts) Run(ctx context.Context) (*DeployContractsResult, error) {
	plan, err := ResolvePlan(uc.cfg)
	if err != nil {
		return nil, err
	}

	steps, err := plan.TopologicalSort()
	if err != nil {
		return nil, err
	}

	if uc.cfg.KeystorePath == "" {
		return nil, fmt.Errorf("keystore path is required")
	}

	account, err := uc.accounts.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	uc.log.Info("resolved signing account", "address", account.Address.Hex())

	deployer, closeFn, err := uc.deployers.Connect(ctx, account)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "compiling",
		Message: fmt.Sprintf("Compiling %d contract sources", len(plan.SourceFiles())),
		Spinner: true,
	})

	contracts, err := uc.compiler.Compile(ctx, plan.SourcePaths(uc.cfg.ContractsDir))
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}

	// Every plan entry must have an artifact before anything is deployed.
	for _, step := range steps {
		if _, err := contracts.Get(step.Ref()); err != nil {
			return nil, err
		}
	}

	libraries := domain.LibraryAddresses{}
	deployed := make([]*domain.DeployedContract, 0, len(steps))

	for i, step := range steps {
		// Guard against an under-linked deployment: every declared
		// dependency must already be in the address map.
		for _, dep := range step.Deps {
			depComponent, _ := plan.Component(dep)
			if _, ok := libraries[depComponent.Ref()]; !ok {
				return nil, fmt.Errorf(
					"component %q: dependency %q has no deployed address", step.Name, dep)
			}
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "deploying",
			Current: i + 1,
			Total:   len(steps),
			Message: fmt.Sprintf("Deploying %s", step.Name),
			Spinner: true,
		})
		uc.log.Info("deploying contract", "name", step.Ref().ContractName())

		updated, result, err := deployer.Deploy(ctx, step.Ref(), contracts, libraries)
		if err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", step.Ref(), err)
		}
		libraries = updated
		deployed = append(deployed, result)

		uc.log.Info("deployed contract",
			"name", step.Ref().ContractName(),
			"address", result.Address.Hex(),
			"tx", result.TxHash.Hex(),
		)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(steps),
		Total:   len(steps),
		Message: "All contracts deployed",
	})

	addresses := make(map[string]string, len(libraries))
	for ref, addr := range libraries {
		checksummed, err := domain.ChecksumAddress(addr.Hex())
		if err != nil {
			return nil, err
		}
		addresses[ref.String()] = checksummed
	}

	return &DeployContractsResult{
		Addresses: addresses,
		Deployed:  deployed,
		Plan:      plan,
	}, nil
}
