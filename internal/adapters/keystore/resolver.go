package keystore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/chaindeploy/internal/config"
	"github.com/trebuchet-org/chaindeploy/internal/domain"
	"github.com/trebuchet-org/chaindeploy/internal/usecase"
)

// passphraseEnv names the environment variable consulted before prompting.
const passphraseEnv = "CHAINDEPLOY_PASSPHRASE"

// Resolver resolves the signing account from a directory of V3 key files.
type Resolver struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewResolver creates a keystore-backed account resolver.
func NewResolver(cfg *config.RuntimeConfig, log *slog.Logger) *Resolver {
	return &Resolver{cfg: cfg, log: log}
}

// Resolve picks an account from the keystore and decrypts its private key.
// With several candidate accounts the user selects one interactively unless
// an address was preconfigured.
func (r *Resolver) Resolve(ctx context.Context) (*domain.Account, error) {
	ks := gethkeystore.NewKeyStore(
		r.cfg.KeystorePath,
		gethkeystore.StandardScryptN,
		gethkeystore.StandardScryptP,
	)

	candidates := ks.Accounts()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no accounts found in keystore %s", r.cfg.KeystorePath)
	}

	account, err := r.selectAccount(candidates)
	if err != nil {
		return nil, err
	}
	r.log.Debug("selected keystore account", "address", account.Address.Hex(), "file", account.URL.Path)

	passphrase, err := r.passphrase(account.Address)
	if err != nil {
		return nil, err
	}

	keyJSON, err := os.ReadFile(account.URL.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := gethkeystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt account %s: %w", account.Address.Hex(), err)
	}

	return &domain.Account{
		Address:    key.Address,
		PrivateKey: key.PrivateKey,
	}, nil
}

// selectAccount narrows the candidate list to a single account.
func (r *Resolver) selectAccount(candidates []accounts.Account) (accounts.Account, error) {
	if r.cfg.Address != "" {
		if !common.IsHexAddress(r.cfg.Address) {
			return accounts.Account{}, fmt.Errorf("invalid account address %q", r.cfg.Address)
		}
		want := common.HexToAddress(r.cfg.Address)
		for _, acct := range candidates {
			if acct.Address == want {
				return acct, nil
			}
		}
		return accounts.Account{}, fmt.Errorf("account %s not found in keystore", want.Hex())
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if r.cfg.NonInteractive {
		return accounts.Account{}, fmt.Errorf(
			"keystore holds %d accounts; pass --address in non-interactive mode", len(candidates))
	}

	options := make([]string, len(candidates))
	for i, acct := range candidates {
		options[i] = acct.Address.Hex()
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	prompt := promptui.Select{
		Label:             "Select signing account",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearchFunc(options),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return accounts.Account{}, fmt.Errorf("account selection cancelled: %w", err)
	}
	return candidates[index], nil
}

// passphrase reads the decryption passphrase from the environment or a
// masked prompt.
func (r *Resolver) passphrase(address common.Address) (string, error) {
	if pass, ok := os.LookupEnv(passphraseEnv); ok {
		return pass, nil
	}

	if r.cfg.NonInteractive {
		return "", fmt.Errorf("passphrase required: set %s in non-interactive mode", passphraseEnv)
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Passphrase for %s", address.Hex()),
		Mask:  '*',
	}
	pass, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("passphrase prompt cancelled: %w", err)
	}
	return pass, nil
}

// fuzzySearchFunc creates a fuzzy matcher for the selection prompt.
func fuzzySearchFunc(options []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		option := strings.ToLower(options[index])
		matches := fuzzy.Find(strings.ToLower(input), []string{option})
		return len(matches) > 0
	}
}

var _ usecase.AccountResolver = (*Resolver)(nil)
