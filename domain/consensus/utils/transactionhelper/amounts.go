package transactionhelper

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// TotalOutputValue returns the sum of the values of tx's outputs
func TotalOutputValue(tx *externalapi.DomainTransaction) (uint64, error) {
	totalSompiOut := uint64(0)
	for i, output := range tx.Outputs {
		newTotalSompiOut := totalSompiOut + output.Value
		if newTotalSompiOut < totalSompiOut {
			return 0, errors.Wrapf(ruleerrors.ErrInvalidTransactionOutput, "total value of the "+
				"transaction outputs overflows at output %d", i)
		}
		totalSompiOut = newTotalSompiOut
	}
	return totalSompiOut, nil
}

// TotalInputValue returns the sum of the values of the outputs tx's inputs spend.
// All outpoints missing from utxoSet are reported together in an ErrMissingTxOut.
func TotalInputValue(tx *externalapi.DomainTransaction, utxoSet externalapi.ReadOnlyUTXOSet) (uint64, error) {
	totalSompiIn := uint64(0)
	var missingOutpoints []*externalapi.DomainOutpoint
	for _, input := range tx.Inputs {
		entry, ok := utxoSet.Get(&input.PreviousOutpoint)
		if !ok {
			outpoint := input.PreviousOutpoint
			missingOutpoints = append(missingOutpoints, &outpoint)
			continue
		}

		newTotalSompiIn := totalSompiIn + entry.Amount()
		if newTotalSompiIn < totalSompiIn {
			return 0, errors.Wrapf(ruleerrors.ErrInvalidTransactionOutput, "total value of the "+
				"outputs spent by the transaction overflows at %s", input.PreviousOutpoint)
		}
		totalSompiIn = newTotalSompiIn
	}

	if len(missingOutpoints) > 0 {
		return 0, ruleerrors.NewErrMissingTxOut(missingOutpoints)
	}

	return totalSompiIn, nil
}

// Fee returns the value tx's inputs carry beyond its outputs.
// A transaction whose outputs exceed its inputs is invalid.
func Fee(tx *externalapi.DomainTransaction, utxoSet externalapi.ReadOnlyUTXOSet) (uint64, error) {
	totalSompiIn, err := TotalInputValue(tx, utxoSet)
	if err != nil {
		return 0, err
	}
	totalSompiOut, err := TotalOutputValue(tx)
	if err != nil {
		return 0, err
	}

	if totalSompiIn < totalSompiOut {
		return 0, errors.Wrapf(ruleerrors.ErrInvalidTransaction, "total value of all transaction inputs "+
			"is %d which is less than the amount spent of %d", totalSompiIn, totalSompiOut)
	}
	return totalSompiIn - totalSompiOut, nil
}
