package solc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombinedJSON(t *testing.T) {
	t.Run("normalizes path-qualified keys", func(t *testing.T) {
		output := `{
			"contracts": {
				"contracts/Registry.sol:Registry": {
					"abi": [{"type":"function","name":"addToken"}],
					"bin": "6060604052"
				},
				"/abs/path/EndpointRegistry.sol:EndpointRegistry": {
					"abi": [],
					"bin": "6060aabb"
				}
			},
			"version": "0.4.26+commit.4563c3fc"
		}`

		contracts, err := ParseCombinedJSON([]byte(output))
		require.NoError(t, err)
		require.Len(t, contracts, 2)

		registry, err := contracts.Get("Registry.sol:Registry")
		require.NoError(t, err)
		assert.Equal(t, "6060604052", registry.Bin)

		_, err = contracts.Get("EndpointRegistry.sol:EndpointRegistry")
		require.NoError(t, err)
	})

	t.Run("accepts string-encoded abi from old solc", func(t *testing.T) {
		output := `{
			"contracts": {
				"Registry.sol:Registry": {
					"abi": "[{\"type\":\"function\"}]",
					"bin": "6060"
				}
			}
		}`

		contracts, err := ParseCombinedJSON([]byte(output))
		require.NoError(t, err)

		registry, err := contracts.Get("Registry.sol:Registry")
		require.NoError(t, err)
		assert.NotEmpty(t, registry.ABI)
	})

	t.Run("rejects empty output", func(t *testing.T) {
		_, err := ParseCombinedJSON([]byte(`{"contracts":{}}`))
		assert.ErrorContains(t, err, "no contracts")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := ParseCombinedJSON([]byte("not json"))
		assert.ErrorContains(t, err, "failed to parse solc output")
	})
}
