package blockvalidator

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model"
)

// blockValidator exposes a set of validation classes, after which
// it's possible to determine whether either a block is valid
type blockValidator struct {
	transactionValidator model.TransactionValidator
}

// New instantiates a new BlockValidator
func New(transactionValidator model.TransactionValidator) model.BlockValidator {
	return &blockValidator{
		transactionValidator: transactionValidator,
	}
}
