package config

import (
	"fmt"
	"math/big"
	"time"
)

// RuntimeConfig represents the complete resolved runtime configuration.
// It is injected into use cases; nothing reads flags or the environment
// past this point.
type RuntimeConfig struct {
	// Signing
	KeystorePath string // directory holding V3 key files; must exist
	Address      string // optional preselected account address

	// Node connection
	Host string
	Port int

	// Deployment settings
	GasPriceGwei int64
	ContractsDir string
	PlanFile     string // optional YAML manifest overriding the built-in plan

	// Output settings
	Pretty bool

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
}

// GasPriceWei derives the wei gas price from the configured GWei value.
func (c *RuntimeConfig) GasPriceWei() *big.Int {
	return new(big.Int).Mul(big.NewInt(c.GasPriceGwei), big.NewInt(1_000_000_000))
}

// RPCURL returns the HTTP JSON-RPC endpoint of the target node.
func (c *RuntimeConfig) RPCURL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}
