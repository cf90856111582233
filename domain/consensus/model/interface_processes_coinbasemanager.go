package model

import "github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"

// CoinbaseManager exposes methods for handling blocks'
// coinbase transactions
type CoinbaseManager interface {
	CalcBlockSubsidy(blockHeight uint64) uint64
	CalculateFees(block *externalapi.DomainBlock, utxoSet externalapi.ReadOnlyUTXOSet) (uint64, error)
	ValidateCoinbaseTransaction(block *externalapi.DomainBlock, utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error
}
