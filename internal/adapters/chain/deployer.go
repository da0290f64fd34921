package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/trebuchet-org/chaindeploy/internal/adapters/solc"
	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/domain"
	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

const receiptPollInterval = 500 * time.Millisecond

// Factory connects to the configured node and builds deployers bound to a
// signing account.
type Factory struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewFactory creates a deployer factory.
func NewFactory(cfg *config.RuntimeConfig, log *slog.Logger) *Factory {
	return &Factory{cfg: cfg, log: log}
}

// Connect dials the node, verifies the connection by fetching the chain ID,
// and returns a deployer signing with the given account.
func (f *Factory) Connect(ctx context.Context, account *domain.Account) (usecase.ContractDeployer, func(), error) {
	client, err := ethclient.DialContext(ctx, f.cfg.RPCURL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to node at %s: %w", f.cfg.RPCURL(), err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	d := &Deployer{
		client:   client,
		signer:   types.NewEIP155Signer(chainID),
		account:  account,
		gasPrice: f.cfg.GasPriceWei(),
		log:      f.log,
	}
	return d, client.Close, nil
}

// Deployer submits contract creation transactions over JSON-RPC.
type Deployer struct {
	client   *ethclient.Client
	signer   types.Signer
	account  *domain.Account
	gasPrice *big.Int
	log      *slog.Logger
}

// Deploy links the contract's creation bytecode against the supplied
// library addresses, submits the creation transaction, and blocks until it
// is mined. It returns the address map extended with the new contract; the
// input map is not mutated.
func (d *Deployer) Deploy(
	ctx context.Context,
	ref domain.ContractRef,
	contracts domain.CompiledContracts,
	libraries domain.LibraryAddresses,
) (domain.LibraryAddresses, *domain.DeployedContract, error) {
	artifact, err := contracts.Get(ref)
	if err != nil {
		return nil, nil, err
	}

	linked, err := solc.LinkBytecode(ref, artifact.Bin, libraries)
	if err != nil {
		return nil, nil, err
	}
	data := common.FromHex(linked)

	nonce, err := d.client.PendingNonceAt(ctx, d.account.Address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasLimit, err := d.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     d.account.Address,
		GasPrice: d.gasPrice,
		Data:     data,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("gas estimation for %s failed: %w", ref, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: d.gasPrice,
		Gas:      gasLimit,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, d.signer, d.account.PrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := d.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	d.log.Debug("creation transaction sent",
		"contract", ref.String(),
		"tx", signedTx.Hash().Hex(),
		"gasLimit", gasLimit,
	)

	receipt, err := d.waitForReceipt(ctx, signedTx.Hash())
	if err != nil {
		return nil, nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, nil, fmt.Errorf("creation of %s reverted (tx %s)", ref, signedTx.Hash().Hex())
	}
	if receipt.ContractAddress == (common.Address{}) {
		return nil, nil, fmt.Errorf("no contract address in receipt for %s", ref)
	}

	updated := libraries.Clone()
	updated[ref] = receipt.ContractAddress

	return updated, &domain.DeployedContract{
		Ref:     ref,
		Address: receipt.ContractAddress,
		TxHash:  signedTx.Hash(),
		GasUsed: receipt.GasUsed,
	}, nil
}

// waitForReceipt polls for the transaction receipt until the context is
// done.
func (d *Deployer) waitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := d.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for transaction %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

var _ usecase.DeployerFactory = (*Factory)(nil)
var _ usecase.ContractDeployer = (*Deployer)(nil)
