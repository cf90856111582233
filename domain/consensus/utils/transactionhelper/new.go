package transactionhelper

import (
	"github.com/google/uuid"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
)

// NewTransactionOutput returns a new output paying value to the owner of publicKey.
// Every output gets a fresh unique ID, so equal payments never share a hash.
func NewTransactionOutput(value uint64, publicKey externalapi.DomainPublicKey) *externalapi.DomainTransactionOutput {
	return &externalapi.DomainTransactionOutput{
		Value:     value,
		UniqueID:  uuid.New(),
		PublicKey: publicKey,
	}
}

// NewCoinbaseTransaction returns a new transaction with no inputs and the given outputs
func NewCoinbaseTransaction(outputs ...*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Inputs:  []*externalapi.DomainTransactionInput{},
		Outputs: outputs,
	}
}
