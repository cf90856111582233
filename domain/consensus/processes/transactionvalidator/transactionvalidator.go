package transactionvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model"
)

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether the transactions of a block are valid
type transactionValidator struct {
	coinbaseManager model.CoinbaseManager
}

// New instantiates a new TransactionValidator
func New(coinbaseManager model.CoinbaseManager) model.TransactionValidator {
	return &transactionValidator{
		coinbaseManager: coinbaseManager,
	}
}
