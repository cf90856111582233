package blockvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

const targetBitLength = 256

// checkTargetRange ensures the header's target is a 256-bit unsigned integer.
// Headers with any other target can't be encoded, and so have no hash.
func checkTargetRange(header *externalapi.DomainBlockHeader) error {
	if header.Target == nil {
		return errors.Wrapf(ruleerrors.ErrInvalidBlockHeader, "block header has no target")
	}
	if header.Target.Sign() < 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidBlockHeader, "block target %s is negative", header.Target)
	}
	if header.Target.BitLen() > targetBitLength {
		return errors.Wrapf(ruleerrors.ErrInvalidBlockHeader, "block target %x is wider than %d bits",
			header.Target, targetBitLength)
	}
	return nil
}

// checkProofOfWork ensures the block hash is less than or equal to the
// target claimed by the header
func checkProofOfWork(header *externalapi.DomainBlockHeader) error {
	hash := consensushashing.HeaderHash(header)
	if !hashes.MatchesTarget(hash, header.Target) {
		return errors.Wrapf(ruleerrors.ErrInvalidHash, "block hash of %064x is higher than "+
			"expected max of %064x", hashes.ToBig(hash), header.Target)
	}
	return nil
}

func checkGenesisLink(header *externalapi.DomainBlockHeader) error {
	if !header.PrevBlockHash.Equal(hashes.Zero()) {
		return errors.Wrapf(ruleerrors.ErrInvalidBlock, "genesis block references %s as its "+
			"predecessor, while it should reference the zero hash", header.PrevBlockHash)
	}
	return nil
}
