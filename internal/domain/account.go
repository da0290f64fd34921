package domain

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a decrypted signing account: the address and the private key
// used to sign contract creation transactions.
type Account struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}
