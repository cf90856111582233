package blockvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

func checkLink(header *externalapi.DomainBlockHeader, tip *externalapi.DomainBlock) error {
	tipHash := consensushashing.BlockHash(tip)
	if !header.PrevBlockHash.Equal(tipHash) {
		return errors.Wrapf(ruleerrors.ErrInvalidBlock, "block references %s as its predecessor, "+
			"while the chain tip is %s", header.PrevBlockHash, tipHash)
	}
	return nil
}

// checkBlockTimestamp ensures the block's timestamp is strictly after its predecessor's
func checkBlockTimestamp(header *externalapi.DomainBlockHeader, tipHeader *externalapi.DomainBlockHeader) error {
	if header.TimeInMilliseconds <= tipHeader.TimeInMilliseconds {
		return errors.Wrapf(ruleerrors.ErrInvalidBlockHeader, "block timestamp of %d is not after "+
			"the timestamp of its predecessor %d", header.TimeInMilliseconds, tipHeader.TimeInMilliseconds)
	}
	return nil
}
