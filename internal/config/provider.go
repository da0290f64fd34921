package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Provider creates the RuntimeConfig for Wire dependency injection.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{
		KeystorePath:   v.GetString("keystore_path"),
		Address:        v.GetString("address"),
		Host:           v.GetString("host"),
		Port:           v.GetInt("port"),
		GasPriceGwei:   v.GetInt64("gas_price"),
		ContractsDir:   v.GetString("contracts_dir"),
		PlanFile:       v.GetString("plan"),
		Pretty:         v.GetBool("pretty"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects bad configuration before any account resolution or RPC
// call happens.
func (c *RuntimeConfig) validate() error {
	if c.KeystorePath != "" {
		info, err := os.Stat(c.KeystorePath)
		if err != nil {
			return fmt.Errorf("keystore path %q: %w", c.KeystorePath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("keystore path %q is not a directory", c.KeystorePath)
		}
	}
	if c.GasPriceGwei <= 0 {
		return fmt.Errorf("gas price must be positive, got %d", c.GasPriceGwei)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid RPC port %d", c.Port)
	}
	return nil
}

// SetupViper creates and configures a viper instance with defaults and
// environment binding.
func SetupViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("CHAINDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8545)
	v.SetDefault("gas_price", 4)
	v.SetDefault("contracts_dir", "contracts")
	v.SetDefault("pretty", false)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("timeout", "10m")

	return v
}
