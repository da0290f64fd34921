package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

// Compiler compiles Solidity sources by shelling out to solc.
type Compiler struct {
	solcPath string
	log      *slog.Logger
}

// NewCompiler creates a solc-backed compiler. The solc binary is resolved
// from PATH; SOLC_PATH overrides it.
func NewCompiler(log *slog.Logger) *Compiler {
	path := os.Getenv("SOLC_PATH")
	if path == "" {
		path = "solc"
	}
	return &Compiler{solcPath: path, log: log}
}

// combinedOutput matches solc's --combined-json abi,bin format. The abi
// field is a JSON array in recent releases and an escaped string in old
// ones; RawMessage keeps both.
type combinedOutput struct {
	Contracts map[string]struct {
		ABI json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	} `json:"contracts"`
	Version string `json:"version"`
}

// Compile runs solc over all source files at once and returns the artifacts
// keyed by "<file>.sol:<Name>".
func (c *Compiler) Compile(ctx context.Context, sourceFiles []string) (domain.CompiledContracts, error) {
	if _, err := exec.LookPath(c.solcPath); err != nil {
		return nil, fmt.Errorf("solc not found in PATH: %w", err)
	}
	for _, file := range sourceFiles {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("contract source not found: %w", err)
		}
	}

	args := append([]string{"--combined-json", "abi,bin"}, sourceFiles...)
	cmd := exec.CommandContext(ctx, c.solcPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.log.Debug("running solc", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("solc failed: %w\n%s", err, stderr.String())
	}

	contracts, err := ParseCombinedJSON(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	c.log.Debug("compiled contracts", "count", len(contracts))
	return contracts, nil
}

// ParseCombinedJSON parses solc --combined-json output. Keys are
// normalized so that path-qualified names like "contracts/Registry.sol:Registry"
// collapse to "Registry.sol:Registry".
func ParseCombinedJSON(data []byte) (domain.CompiledContracts, error) {
	var combined combinedOutput
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, fmt.Errorf("failed to parse solc output: %w", err)
	}
	if len(combined.Contracts) == 0 {
		return nil, fmt.Errorf("solc produced no contracts")
	}

	contracts := make(domain.CompiledContracts, len(combined.Contracts))
	for key, artifact := range combined.Contracts {
		path, name, ok := strings.Cut(key, ":")
		if !ok {
			return nil, fmt.Errorf("unexpected solc contract key %q", key)
		}
		ref := domain.NewContractRef(filepath.Base(path), name)
		contracts[ref] = &domain.CompiledContract{
			ABI: artifact.ABI,
			Bin: artifact.Bin,
		}
	}
	return contracts, nil
}
