package coinbasemanager

import (
	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus/model"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/constants"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

type coinbaseManager struct {
	initialReward   uint64
	halvingInterval uint64
}

// New instantiates a new CoinbaseManager
func New(params *chainconfig.Params) model.CoinbaseManager {
	return &coinbaseManager{
		initialReward:   params.InitialReward,
		halvingInterval: params.HalvingInterval,
	}
}

// CalcBlockSubsidy returns the subsidy amount a block at the provided height
// should have. This is mainly used for determining how much the coinbase for
// newly generated blocks awards as well as validating the coinbase for blocks
// has the expected value.
//
// The subsidy is halved every halvingInterval blocks. Mathematically
// this is: initialReward * SompiPerCoin / 2^(blockHeight/halvingInterval)
func (c *coinbaseManager) CalcBlockSubsidy(blockHeight uint64) uint64 {
	baseSubsidy := c.initialReward * constants.SompiPerCoin
	if c.halvingInterval == 0 {
		return baseSubsidy
	}

	// Equivalent to: baseSubsidy / 2^(blockHeight/halvingInterval)
	halvings := blockHeight / c.halvingInterval
	if halvings >= 64 {
		return 0
	}
	return baseSubsidy >> halvings
}

// CalculateFees sums the fees of every transaction of block but its coinbase
func (c *coinbaseManager) CalculateFees(block *externalapi.DomainBlock,
	utxoSet externalapi.ReadOnlyUTXOSet) (uint64, error) {

	totalFees := uint64(0)
	for i := 1; i < len(block.Transactions); i++ {
		fee, err := transactionhelper.Fee(block.Transactions[i], utxoSet)
		if err != nil {
			return 0, errors.Wrapf(err, "failed calculating the fee of transaction %d", i)
		}

		newTotalFees := totalFees + fee
		if newTotalFees < totalFees {
			return 0, errors.Wrapf(ruleerrors.ErrInvalidTransaction, "total fees of the block overflow "+
				"at transaction %d", i)
		}
		totalFees = newTotalFees
	}
	return totalFees, nil
}

// ValidateCoinbaseTransaction checks the shape of the block's coinbase transaction,
// and that it pays exactly the block subsidy plus the fees of the block
func (c *coinbaseManager) ValidateCoinbaseTransaction(block *externalapi.DomainBlock,
	utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error {

	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "block has no coinbase transaction")
	}

	coinbaseTransaction := block.Transactions[0]
	if len(coinbaseTransaction.Inputs) != 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "coinbase transaction has %d inputs, "+
			"while it should have none", len(coinbaseTransaction.Inputs))
	}
	if len(coinbaseTransaction.Outputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "coinbase transaction has no outputs")
	}

	totalFees, err := c.CalculateFees(block, utxoSet)
	if err != nil {
		return err
	}

	subsidy := c.CalcBlockSubsidy(blockHeight)
	expectedReward := subsidy + totalFees
	if expectedReward < subsidy {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "block subsidy %d plus fees %d overflow",
			subsidy, totalFees)
	}

	coinbaseValue, err := transactionhelper.TotalOutputValue(coinbaseTransaction)
	if err != nil {
		return err
	}

	if coinbaseValue != expectedReward {
		return errors.Wrapf(ruleerrors.ErrInvalidTransaction, "coinbase transaction pays %d, while "+
			"the expected reward is %d (subsidy %d, fees %d)", coinbaseValue, expectedReward, subsidy, totalFees)
	}

	return nil
}
