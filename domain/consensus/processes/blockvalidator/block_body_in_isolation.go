package blockvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/merkle"
	"github.com/pkg/errors"
)

// checkBlockHashMerkleRoot ensures the header commits to exactly the block's
// transactions, in their order
func checkBlockHashMerkleRoot(block *externalapi.DomainBlock) error {
	// The merkle root of no transactions is undefined
	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidBlock, "block does not contain "+
			"any transactions")
	}

	calculatedHashMerkleRoot := merkle.CalculateHashMerkleRoot(block.Transactions)
	if !block.Header.HashMerkleRoot.Equal(calculatedHashMerkleRoot) {
		return errors.Wrapf(ruleerrors.ErrInvalidMerkleRoot, "block hash merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s",
			block.Header.HashMerkleRoot, calculatedHashMerkleRoot)
	}
	return nil
}

// checkBlockStructure ensures the block has no missing parts, so that the
// rest of the validation may dereference them freely
func checkBlockStructure(block *externalapi.DomainBlock) error {
	if block == nil || block.Header == nil {
		return errors.Wrapf(ruleerrors.ErrInvalidBlock, "block has no header")
	}
	for i, tx := range block.Transactions {
		if tx == nil {
			return errors.Wrapf(ruleerrors.ErrInvalidBlock, "transaction %d is missing", i)
		}
		for j, input := range tx.Inputs {
			if input == nil {
				return errors.Wrapf(ruleerrors.ErrInvalidBlock, "input %d of transaction %d is missing", j, i)
			}
		}
		for j, output := range tx.Outputs {
			if output == nil {
				return errors.Wrapf(ruleerrors.ErrInvalidBlock, "output %d of transaction %d is missing", j, i)
			}
		}
	}
	return nil
}
