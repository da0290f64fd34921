package solc

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/trebuchet-org/chaindeploy/internal/domain"
)

// LinkBytecode substitutes the deployed library addresses into creation
// bytecode. solc marks library call sites with 40-character placeholders;
// two formats exist: the legacy one embeds the fully qualified library name
// padded with underscores, solc >= 0.5 embeds
// "__$<34 hex chars of keccak256(fqn)>$__".
//
// It fails if any placeholder remains unresolved, so an under-linked
// contract can never reach the chain.
func LinkBytecode(ref domain.ContractRef, bin string, libraries domain.LibraryAddresses) (string, error) {
	linked := bin
	for libRef, addr := range libraries {
		addrHex := strings.ToLower(addr.Hex()[2:])
		for _, placeholder := range placeholders(libRef) {
			linked = strings.ReplaceAll(linked, placeholder, addrHex)
		}
	}

	// Fully linked bytecode is plain hex; any underscore left is an
	// unresolved placeholder.
	if i := strings.Index(linked, "_"); i >= 0 {
		end := i + 40
		if end > len(linked) {
			end = len(linked)
		}
		return "", fmt.Errorf(
			"bytecode of %s is under-linked: unresolved library placeholder %q",
			ref, strings.Trim(linked[i:end], "_"))
	}
	return linked, nil
}

// placeholders returns both placeholder spellings for a library reference.
func placeholders(ref domain.ContractRef) []string {
	fqn := ref.FullyQualifiedName()

	hash := crypto.Keccak256Hash([]byte(fqn)).Hex()[2:36]
	hashed := "__$" + hash + "$__"

	id := fqn
	if len(id) > 36 {
		id = id[:36]
	}
	legacy := "__" + id + strings.Repeat("_", 38-len(id))

	return []string{hashed, legacy}
}
