package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ChecksumAddress normalizes a hex address to its EIP-55 mixed-case
// checksummed form. The input may be any-cased and may or may not carry
// a 0x prefix.
func ChecksumAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("malformed address %q: not a 20-byte hex encoding", s)
	}
	return common.HexToAddress(s).Hex(), nil
}
