package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

func TestContractRef(t *testing.T) {
	t.Run("parse valid reference", func(t *testing.T) {
		ref, err := domain.ParseContractRef("Registry.sol:Registry")
		require.NoError(t, err)
		assert.Equal(t, "Registry.sol", ref.SourceFile())
		assert.Equal(t, "Registry", ref.ContractName())
		assert.Equal(t, "Registry.sol:Registry", ref.String())
	})

	t.Run("invalid references", func(t *testing.T) {
		for _, s := range []string{"", "Registry.sol", ":Registry", "Registry.sol:", "a:b:c"} {
			_, err := domain.ParseContractRef(s)
			assert.Error(t, err, "reference %q should be rejected", s)
		}
	})

	t.Run("new ref strips directories", func(t *testing.T) {
		ref := domain.NewContractRef("contracts/Registry.sol", "Registry")
		assert.Equal(t, domain.ContractRef("Registry.sol:Registry"), ref)
	})
}

func TestCompiledContractsGet(t *testing.T) {
	ref := domain.ContractRef("Registry.sol:Registry")
	contracts := domain.CompiledContracts{
		ref: {Bin: "6060"},
	}

	t.Run("found", func(t *testing.T) {
		artifact, err := contracts.Get(ref)
		require.NoError(t, err)
		assert.Equal(t, "6060", artifact.Bin)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := contracts.Get("Missing.sol:Missing")
		assert.ErrorContains(t, err, "no compiled artifact")
	})

	t.Run("empty bytecode", func(t *testing.T) {
		contracts["Empty.sol:Empty"] = &domain.CompiledContract{}
		_, err := contracts.Get("Empty.sol:Empty")
		assert.ErrorContains(t, err, "no creation bytecode")
	})
}

func TestLibraryAddresses(t *testing.T) {
	addr1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	addr2 := common.HexToAddress("0x2222222222222222222222222222222222222222")

	t.Run("clone does not alias", func(t *testing.T) {
		original := domain.LibraryAddresses{"A.sol:A": addr1}
		clone := original.Clone()
		clone["B.sol:B"] = addr2

		assert.Len(t, original, 1)
		assert.Len(t, clone, 2)
	})

	t.Run("merge keeps both inputs intact", func(t *testing.T) {
		left := domain.LibraryAddresses{"A.sol:A": addr1}
		right := domain.LibraryAddresses{"B.sol:B": addr2}

		merged := left.Merge(right)

		assert.Len(t, merged, 2)
		assert.Len(t, left, 1)
		assert.Len(t, right, 1)
		assert.Equal(t, addr1, merged["A.sol:A"])
		assert.Equal(t, addr2, merged["B.sol:B"])
	})
}
