package hashes

import (
	"math/big"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
)

// zeroHash is the DomainHash value of all zeros, and the predecessor of every genesis block.
var zeroHash externalapi.DomainHash

// Zero returns the all-zero hash
func Zero() *externalapi.DomainHash {
	hashClone := zeroHash
	return &hashClone
}

// ToBig converts a externalapi.DomainHash into a big.Int treated as a little endian string.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := hash.ByteArray()
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// MatchesTarget returns whether the given hash, read as a 256-bit unsigned
// integer, is less than or equal to target.
func MatchesTarget(hash *externalapi.DomainHash, target *big.Int) bool {
	if target == nil {
		return false
	}
	return ToBig(hash).Cmp(target) <= 0
}
