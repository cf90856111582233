package blockvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/infrastructure/logger"
)

// ValidateGenesisBlock validates the first block of a chain. The genesis block
// is the trust anchor: only its link to the zero hash is checked, along with the
// header being well formed.
func (v *blockValidator) ValidateGenesisBlock(block *externalapi.DomainBlock) error {
	err := checkBlockStructure(block)
	if err != nil {
		return err
	}

	err = checkGenesisLink(block.Header)
	if err != nil {
		return err
	}

	return checkTargetRange(block.Header)
}

// ValidateBlock validates a block that extends tip. utxoSet is the unspent set
// of the chain ending at tip, and blockHeight the height the block will get.
// The checks run in a fixed order and the first failure is returned.
func (v *blockValidator) ValidateBlock(block *externalapi.DomainBlock, tip *externalapi.DomainBlock,
	utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBlock")
	defer onEnd()

	err := checkBlockStructure(block)
	if err != nil {
		return err
	}

	err = checkLink(block.Header, tip)
	if err != nil {
		return err
	}

	err = checkTargetRange(block.Header)
	if err != nil {
		return err
	}

	err = checkProofOfWork(block.Header)
	if err != nil {
		return err
	}

	err = checkBlockHashMerkleRoot(block)
	if err != nil {
		return err
	}

	err = checkBlockTimestamp(block.Header, tip.Header)
	if err != nil {
		return err
	}

	log.Tracef("Validating %d transactions of the block at height %d", len(block.Transactions), blockHeight)
	return v.transactionValidator.ValidateTransactions(block, utxoSet, blockHeight)
}
