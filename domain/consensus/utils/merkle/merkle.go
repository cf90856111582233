package merkle

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func hashMerkleBranches(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	// Concatenate the left and right nodes.
	w := hashes.NewMerkleBranchHashWriter()

	w.InfallibleWrite(left.ByteSlice())
	w.InfallibleWrite(right.ByteSlice())

	return w.Finalize()
}

// CalculateHashMerkleRoot calculates the merkle root of a tree consisting of
// the given transaction hashes. See `merkleRoot` for further details.
//
// The merkle root of zero transactions is undefined, and this panics if
// transactions is empty.
func CalculateHashMerkleRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash {
	if len(transactions) == 0 {
		panic(errors.New("the merkle root of zero transactions is undefined"))
	}
	txHashes := make([]*externalapi.DomainHash, len(transactions))
	for i, tx := range transactions {
		txHashes[i] = consensushashing.TransactionHash(tx)
	}
	return merkleRoot(txHashes)
}

// merkleRoot folds the given leaves layer by layer. Adjacent nodes are paired
// left to right, and the last node of a layer with an odd number of nodes is
// paired with itself. A single leaf is its own root.
func merkleRoot(leaves []*externalapi.DomainHash) *externalapi.DomainHash {
	layer := leaves
	for len(layer) > 1 {
		nextLayer := make([]*externalapi.DomainHash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			left := layer[i]
			right := left
			if i+1 < len(layer) {
				right = layer[i+1]
			}
			nextLayer = append(nextLayer, hashMerkleBranches(left, right))
		}
		layer = nextLayer
	}
	return layer[0]
}
