package model

import "github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"

// TransactionValidator exposes a set of validation classes, after which
// it's possible to determine whether the transactions of a block are valid
type TransactionValidator interface {
	ValidateTransactions(block *externalapi.DomainBlock, utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error
}
