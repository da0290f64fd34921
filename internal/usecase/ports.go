package usecase

import (
	"context"

	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

// Compiler compiles contract source files into deployable artifacts.
type Compiler interface {
	// Compile runs the compiler over all source files at once and returns
	// the artifacts keyed by contract reference.
	Compile(ctx context.Context, sourceFiles []string) (domain.CompiledContracts, error)
}

// AccountResolver resolves the signing account from the configured keystore,
// interactively when necessary.
type AccountResolver interface {
	Resolve(ctx context.Context) (*domain.Account, error)
}

// ContractDeployer submits a contract creation transaction for the given
// reference, linking the bytecode against the supplied library addresses.
// It returns the address map extended with the newly deployed contract so
// callers always observe the full, updated map; the input map is never
// mutated.
type ContractDeployer interface {
	Deploy(
		ctx context.Context,
		ref domain.ContractRef,
		contracts domain.CompiledContracts,
		libraries domain.LibraryAddresses,
	) (domain.LibraryAddresses, *domain.DeployedContract, error)
}

// DeployerFactory connects to the configured node and produces a deployer
// bound to the signing account. The returned close function releases the
// connection.
type DeployerFactory interface {
	Connect(ctx context.Context, account *domain.Account) (ContractDeployer, func(), error)
}

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events.
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink.
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
