package mining

import (
	"math"
	"math/rand"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

// SolveBlock increments the given block's nonce until its hash satisfies its target
func SolveBlock(block *externalapi.DomainBlock, rd *rand.Rand) {
	for i := rd.Uint64(); i < math.MaxUint64; i++ {
		block.Header.Nonce = i
		hash := consensushashing.BlockHash(block)
		if hashes.MatchesTarget(hash, block.Header.Target) {
			return
		}
	}

	panic(errors.New("went over all the nonce space and couldn't find a single one that gives a valid block"))
}
