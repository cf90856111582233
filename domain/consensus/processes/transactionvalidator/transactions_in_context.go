package transactionvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/signing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

// ValidateTransactions validates the transactions of block against utxoSet, the unspent
// outputs of the chain the block extends, and blockHeight, the height the block will
// have once appended. Transactions may only spend outputs that exist in utxoSet, so
// outputs created within the block can't be spent by it.
func (v *transactionValidator) ValidateTransactions(block *externalapi.DomainBlock,
	utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error {

	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "block has no transactions")
	}

	err := v.coinbaseManager.ValidateCoinbaseTransaction(block, utxoSet, blockHeight)
	if err != nil {
		return err
	}

	err = checkOutpointsAreNew(block, utxoSet)
	if err != nil {
		return err
	}

	spentOutpoints := make(map[externalapi.DomainOutpoint]struct{})
	for i := 1; i < len(block.Transactions); i++ {
		err := v.validateTransactionInContext(block.Transactions[i], utxoSet, spentOutpoints)
		if err != nil {
			return errors.Wrapf(err, "transaction %d is invalid", i)
		}
	}

	return nil
}

// checkOutpointsAreNew ensures that no transaction of block, the coinbase included,
// creates an outpoint that is already unspent, and that no transaction appears
// twice in block. Either would make the new outputs overwrite existing ones.
func checkOutpointsAreNew(block *externalapi.DomainBlock, utxoSet externalapi.ReadOnlyUTXOSet) error {
	transactionIDs := make(map[externalapi.DomainTransactionID]int, len(block.Transactions))
	for i, tx := range block.Transactions {
		outpoints := consensushashing.OutpointsOf(tx)
		if len(outpoints) > 0 {
			transactionID := outpoints[0].TransactionID
			if previous, ok := transactionIDs[transactionID]; ok {
				return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "transactions %d and %d "+
					"are both %s", previous, i, transactionID)
			}
			transactionIDs[transactionID] = i
		}

		for _, outpoint := range outpoints {
			if utxoSet.Contains(outpoint) {
				return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "transaction %d creates %s, "+
					"which is already unspent", i, outpoint)
			}
		}
	}
	return nil
}

func (v *transactionValidator) validateTransactionInContext(tx *externalapi.DomainTransaction,
	utxoSet externalapi.ReadOnlyUTXOSet, spentOutpoints map[externalapi.DomainOutpoint]struct{}) error {

	totalSompiIn := uint64(0)
	for i, input := range tx.Inputs {
		entry, ok := utxoSet.Get(&input.PreviousOutpoint)
		if !ok {
			outpoint := input.PreviousOutpoint
			return ruleerrors.NewErrMissingTxOut([]*externalapi.DomainOutpoint{&outpoint})
		}

		if _, ok := spentOutpoints[input.PreviousOutpoint]; ok {
			return errors.Wrapf(ruleerrors.ErrInvalidTransactionInput, "input %d spends %s, which "+
				"was already spent in this block", i, input.PreviousOutpoint)
		}
		spentOutpoints[input.PreviousOutpoint] = struct{}{}

		err := v.validateInputSignature(input, entry)
		if err != nil {
			return errors.Wrapf(err, "input %d", i)
		}

		totalSompiIn, err = checkEntryAmounts(entry, totalSompiIn)
		if err != nil {
			return err
		}
	}

	totalSompiOut, err := transactionhelper.TotalOutputValue(tx)
	if err != nil {
		return err
	}

	// Ensure the transaction does not spend more than its inputs.
	if totalSompiIn < totalSompiOut {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "total value of all transaction inputs for "+
			"the transaction is %d which is less than the amount "+
			"spent of %d", totalSompiIn, totalSompiOut)
	}

	return nil
}

func (v *transactionValidator) validateInputSignature(input *externalapi.DomainTransactionInput,
	entry externalapi.UTXOEntry) error {

	outputHash := consensushashing.TransactionOutputHash(entry.Output())
	if !signing.Verify(input.Signature, outputHash, entry.PublicKey()) {
		return errors.Wrapf(ruleerrors.ErrInvalidSignature, "signature of the spend of %s doesn't "+
			"verify against the public key %s", input.PreviousOutpoint, entry.PublicKey())
	}
	return nil
}

func checkEntryAmounts(entry externalapi.UTXOEntry, totalSompiInBefore uint64) (totalSompiInAfter uint64, err error) {
	// We could potentially overflow the accumulator so check for overflow.
	totalSompiInAfter = totalSompiInBefore + entry.Amount()
	if totalSompiInAfter < totalSompiInBefore {
		return 0, errors.Wrapf(ruleerrors.ErrInvalidTransactionOutput, "total value of all transaction "+
			"inputs overflows after adding %d to %d", entry.Amount(), totalSompiInBefore)
	}
	return totalSompiInAfter, nil
}
