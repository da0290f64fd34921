package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	rootCmd := NewRootCmd()

	t.Run("subcommands registered", func(t *testing.T) {
		names := make(map[string]bool)
		for _, cmd := range rootCmd.Commands() {
			names[cmd.Name()] = true
		}
		assert.True(t, names["deploy"])
		assert.True(t, names["plan"])
		assert.True(t, names["version"])
	})

	t.Run("deploy flag defaults", func(t *testing.T) {
		deployCmd, _, err := rootCmd.Find([]string{"deploy"})
		require.NoError(t, err)

		assert.Equal(t, "4", deployCmd.Flag("gas-price").DefValue)
		assert.Equal(t, "8545", deployCmd.Flag("port").DefValue)
		assert.Equal(t, "false", deployCmd.Flag("pretty").DefValue)
		assert.Equal(t, "", deployCmd.Flag("keystore-path").DefValue)
	})

	t.Run("flag keys map to viper keys", func(t *testing.T) {
		assert.Equal(t, "gas_price", flagKey("gas-price"))
		assert.Equal(t, "keystore_path", flagKey("keystore-path"))
		assert.Equal(t, "non_interactive", flagKey("non-interactive"))
		assert.Equal(t, "contracts_dir", flagKey("contracts-dir"))
		assert.Equal(t, "pretty", flagKey("pretty"))
	})
}
