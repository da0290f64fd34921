package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path string) error {
	return os.WriteFile(path, []byte("{}"), 0o600)
}

func TestProviderDefaults(t *testing.T) {
	v := SetupViper()

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8545, cfg.Port)
	assert.Equal(t, int64(4), cfg.GasPriceGwei)
	assert.Equal(t, "contracts", cfg.ContractsDir)
	assert.False(t, cfg.Pretty)
}

func TestGasPriceWei(t *testing.T) {
	t.Run("default 4 gwei", func(t *testing.T) {
		cfg := &RuntimeConfig{GasPriceGwei: 4}
		assert.Equal(t, big.NewInt(4_000_000_000), cfg.GasPriceWei())
	})

	t.Run("custom value", func(t *testing.T) {
		cfg := &RuntimeConfig{GasPriceGwei: 20}
		assert.Equal(t, big.NewInt(20_000_000_000), cfg.GasPriceWei())
	})
}

func TestRPCURL(t *testing.T) {
	cfg := &RuntimeConfig{Host: "127.0.0.1", Port: 8546}
	assert.Equal(t, "http://127.0.0.1:8546", cfg.RPCURL())
}

func TestProviderValidation(t *testing.T) {
	t.Run("missing keystore path", func(t *testing.T) {
		v := SetupViper()
		v.Set("keystore_path", "/does/not/exist")

		_, err := Provider(v)
		assert.ErrorContains(t, err, "keystore path")
	})

	t.Run("keystore path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "key.json")
		require.NoError(t, writeFile(file))

		v := SetupViper()
		v.Set("keystore_path", file)

		_, err := Provider(v)
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("existing keystore dir accepted", func(t *testing.T) {
		v := SetupViper()
		v.Set("keystore_path", t.TempDir())

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.NotEmpty(t, cfg.KeystorePath)
	})

	t.Run("non-positive gas price", func(t *testing.T) {
		v := SetupViper()
		v.Set("gas_price", 0)

		_, err := Provider(v)
		assert.ErrorContains(t, err, "gas price")
	})

	t.Run("invalid port", func(t *testing.T) {
		v := SetupViper()
		v.Set("port", 70000)

		_, err := Provider(v)
		assert.ErrorContains(t, err, "port")
	})
}
