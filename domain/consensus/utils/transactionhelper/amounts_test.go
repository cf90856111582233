package transactionhelper_test

import (
	"errors"
	"math"
	"testing"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/utxo"
)

func outpoint(b byte, index uint32) *externalapi.DomainOutpoint {
	return externalapi.NewDomainOutpoint(
		externalapi.NewDomainTransactionIDFromByteArray(&[externalapi.DomainHashSize]byte{b}), index)
}

func spending(outpoints ...*externalapi.DomainOutpoint) *externalapi.DomainTransaction {
	tx := &externalapi.DomainTransaction{}
	for _, outpoint := range outpoints {
		tx.Inputs = append(tx.Inputs, &externalapi.DomainTransactionInput{PreviousOutpoint: *outpoint})
	}
	return tx
}

func TestFee(t *testing.T) {
	utxoSet := utxo.NewCollection()
	small, big := outpoint(1, 0), outpoint(1, 1)
	utxoSet.Add(small, utxo.NewUTXOEntry(transactionhelper.NewTransactionOutput(100, externalapi.DomainPublicKey{}), 0, true))
	utxoSet.Add(big, utxo.NewUTXOEntry(transactionhelper.NewTransactionOutput(math.MaxUint64, externalapi.DomainPublicKey{}), 0, true))

	withOutputs := func(tx *externalapi.DomainTransaction, values ...uint64) *externalapi.DomainTransaction {
		for _, value := range values {
			tx.Outputs = append(tx.Outputs, transactionhelper.NewTransactionOutput(value, externalapi.DomainPublicKey{}))
		}
		return tx
	}

	tests := []struct {
		name          string
		tx            *externalapi.DomainTransaction
		expectedFee   uint64
		expectedError error
	}{
		{name: "no fee", tx: withOutputs(spending(small), 60, 40), expectedFee: 0},
		{name: "fee", tx: withOutputs(spending(small), 60), expectedFee: 40},
		{name: "creates value", tx: withOutputs(spending(small), 101), expectedError: ruleerrors.ErrInvalidTransaction},
		{name: "missing input", tx: withOutputs(spending(outpoint(2, 0)), 1), expectedError: ruleerrors.ErrInvalidTransactionInput},
		{name: "input overflow", tx: withOutputs(spending(small, big), 1), expectedError: ruleerrors.ErrInvalidTransactionOutput},
		{name: "output overflow", tx: withOutputs(spending(big), math.MaxUint64, 1), expectedError: ruleerrors.ErrInvalidTransactionOutput},
	}

	for _, test := range tests {
		fee, err := transactionhelper.Fee(test.tx, utxoSet)
		if test.expectedError != nil {
			if !errors.Is(err, test.expectedError) {
				t.Errorf("TestFee: %s: expected %s, got: %v", test.name, test.expectedError, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("TestFee: %s: unexpected error: %+v", test.name, err)
			continue
		}
		if fee != test.expectedFee {
			t.Errorf("TestFee: %s: expected fee %d, got %d", test.name, test.expectedFee, fee)
		}
	}
}

func TestTotalInputValueReportsAllMissing(t *testing.T) {
	tx := spending(outpoint(1, 0), outpoint(2, 0), outpoint(3, 7))
	_, err := transactionhelper.TotalInputValue(tx, utxo.NewCollection())

	var missingErr ruleerrors.ErrMissingTxOut
	if !errors.As(err, &missingErr) {
		t.Fatalf("TestTotalInputValueReportsAllMissing: expected ErrMissingTxOut, got: %v", err)
	}
	if len(missingErr.MissingOutpoints) != 3 {
		t.Fatalf("TestTotalInputValueReportsAllMissing: expected 3 missing outpoints, got %d",
			len(missingErr.MissingOutpoints))
	}
}
