package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractRef identifies a deployable contract as "<source-file>:<ContractName>",
// e.g. "Registry.sol:Registry". It is used both to look up compiled artifacts
// and as the key in address maps.
type ContractRef string

// NewContractRef builds a reference from a source file name and contract name.
func NewContractRef(sourceFile, contractName string) ContractRef {
	return ContractRef(filepath.Base(sourceFile) + ":" + contractName)
}

// ParseContractRef validates and returns a reference of the form
// "<file>.sol:<Name>".
func ParseContractRef(s string) (ContractRef, error) {
	ref := ContractRef(s)
	if !ref.Valid() {
		return "", fmt.Errorf("invalid contract reference %q (expected <file>.sol:<Name>)", s)
	}
	return ref, nil
}

// SourceFile returns the source file part of the reference.
func (r ContractRef) SourceFile() string {
	file, _, _ := strings.Cut(string(r), ":")
	return file
}

// ContractName returns the contract name part of the reference.
func (r ContractRef) ContractName() string {
	_, name, _ := strings.Cut(string(r), ":")
	return name
}

// Valid reports whether the reference has both a source file and a contract name.
func (r ContractRef) Valid() bool {
	file, name, ok := strings.Cut(string(r), ":")
	return ok && file != "" && name != "" && !strings.Contains(name, ":")
}

func (r ContractRef) String() string {
	return string(r)
}

// FullyQualifiedName returns the solc fully qualified name used in link
// references, which matches the reference format.
func (r ContractRef) FullyQualifiedName() string {
	return string(r)
}

// CompiledContract is a single solc artifact: the contract ABI and the
// creation bytecode as a hex string (no 0x prefix, possibly containing
// unresolved library link placeholders).
type CompiledContract struct {
	ABI json.RawMessage
	Bin string
}

// CompiledContracts maps contract references to their compiled artifacts.
// Produced once per run by the compiler and read-only afterwards.
type CompiledContracts map[ContractRef]*CompiledContract

// Get looks up the artifact for ref.
func (c CompiledContracts) Get(ref ContractRef) (*CompiledContract, error) {
	artifact, ok := c[ref]
	if !ok {
		return nil, fmt.Errorf("no compiled artifact for %s", ref)
	}
	if artifact.Bin == "" {
		return nil, fmt.Errorf("artifact for %s has no creation bytecode", ref)
	}
	return artifact, nil
}

// LibraryAddresses maps contract references to their deployed on-chain
// addresses. It grows by one entry per successful deployment and is passed
// with value semantics: operations that extend it return the updated map
// instead of mutating a shared reference.
type LibraryAddresses map[ContractRef]common.Address

// Clone returns a shallow copy so callers can extend the map without
// aliasing the input.
func (l LibraryAddresses) Clone() LibraryAddresses {
	out := make(LibraryAddresses, len(l)+1)
	for ref, addr := range l {
		out[ref] = addr
	}
	return out
}

// Merge returns a copy of l extended with all entries of other.
func (l LibraryAddresses) Merge(other LibraryAddresses) LibraryAddresses {
	out := l.Clone()
	for ref, addr := range other {
		out[ref] = addr
	}
	return out
}

// DeployedContract describes the outcome of a single contract creation.
type DeployedContract struct {
	Ref     ContractRef
	Address common.Address
	TxHash  common.Hash
	GasUsed uint64
}
