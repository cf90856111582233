package coinbasemanager_test

import (
	"errors"
	"math"
	"testing"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/processes/coinbasemanager"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/constants"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/testutils"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/utxo"
)

func TestCalcBlockSubsidy(t *testing.T) {
	params := chainconfig.DevnetParams.Clone()
	params.InitialReward = 50
	params.HalvingInterval = 210
	manager := coinbasemanager.New(params)

	base := uint64(50 * constants.SompiPerCoin)
	tests := []struct {
		blockHeight uint64
		expected    uint64
	}{
		{blockHeight: 0, expected: base},
		{blockHeight: 209, expected: base},
		{blockHeight: 210, expected: base / 2},
		{blockHeight: 419, expected: base / 2},
		{blockHeight: 420, expected: base / 4},
		{blockHeight: 210 * 63, expected: base >> 63},
		{blockHeight: 210 * 64, expected: 0},
		{blockHeight: math.MaxUint64, expected: 0},
	}

	for _, test := range tests {
		subsidy := manager.CalcBlockSubsidy(test.blockHeight)
		if subsidy != test.expected {
			t.Errorf("TestCalcBlockSubsidy: height %d: expected %d, got %d",
				test.blockHeight, test.expected, subsidy)
		}
	}

	params.HalvingInterval = 0
	if coinbasemanager.New(params).CalcBlockSubsidy(math.MaxUint64) != base {
		t.Errorf("TestCalcBlockSubsidy: a zero halving interval must disable halving")
	}
}

func TestValidateCoinbaseTransaction(t *testing.T) {
	params := chainconfig.DevnetParams.Clone()
	manager := coinbasemanager.New(params)
	keyPair, publicKey := testutils.GenerateKeyPair(t)

	// An existing unspent output worth 1000 sompi
	fundingTransaction := testutils.NewCoinbase(1000, publicKey)
	funding := testutils.OutputOf(fundingTransaction, 0, keyPair)
	utxoSet := utxo.NewCollection()
	utxoSet.Add(funding.Outpoint, utxo.NewUTXOEntry(funding.Output, 0, true))

	// Pays a fee of 100
	spend := testutils.NewSpendingTransaction(t, []*testutils.SpentOutput{funding},
		transactionhelper.NewTransactionOutput(900, publicKey))

	const blockHeight = 5
	subsidy := manager.CalcBlockSubsidy(blockHeight)

	fees, err := manager.CalculateFees(&externalapi.DomainBlock{
		Transactions: []*externalapi.DomainTransaction{testutils.NewCoinbase(0, publicKey), spend},
	}, utxoSet)
	if err != nil {
		t.Fatalf("TestValidateCoinbaseTransaction: CalculateFees: %+v", err)
	}
	if fees != 100 {
		t.Fatalf("TestValidateCoinbaseTransaction: expected fees of 100, got %d", fees)
	}

	overspend := testutils.NewSpendingTransaction(t, []*testutils.SpentOutput{funding},
		transactionhelper.NewTransactionOutput(1001, publicKey))
	missing := testutils.NewSpendingTransaction(t, []*testutils.SpentOutput{
		testutils.OutputOf(testutils.NewCoinbase(1, publicKey), 0, keyPair)},
		transactionhelper.NewTransactionOutput(1, publicKey))

	tests := []struct {
		name          string
		transactions  []*externalapi.DomainTransaction
		expectedError error
	}{
		{
			name:         "exact reward",
			transactions: []*externalapi.DomainTransaction{testutils.NewCoinbase(subsidy+100, publicKey), spend},
		},
		{
			name: "reward split over outputs",
			transactions: []*externalapi.DomainTransaction{transactionhelper.NewCoinbaseTransaction(
				transactionhelper.NewTransactionOutput(subsidy, publicKey),
				transactionhelper.NewTransactionOutput(100, publicKey)), spend},
		},
		{
			name:          "reward too high",
			transactions:  []*externalapi.DomainTransaction{testutils.NewCoinbase(subsidy+101, publicKey), spend},
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "fees not collected",
			transactions:  []*externalapi.DomainTransaction{testutils.NewCoinbase(subsidy, publicKey), spend},
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "coinbase with inputs",
			transactions:  []*externalapi.DomainTransaction{spend},
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "coinbase without outputs",
			transactions:  []*externalapi.DomainTransaction{transactionhelper.NewCoinbaseTransaction()},
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "no transactions",
			transactions:  nil,
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "outputs exceed inputs",
			transactions:  []*externalapi.DomainTransaction{testutils.NewCoinbase(subsidy, publicKey), overspend},
			expectedError: ruleerrors.ErrInvalidTransaction,
		},
		{
			name:          "missing spent output",
			transactions:  []*externalapi.DomainTransaction{testutils.NewCoinbase(subsidy, publicKey), missing},
			expectedError: ruleerrors.ErrInvalidTransactionInput,
		},
	}

	for _, test := range tests {
		block := &externalapi.DomainBlock{Transactions: test.transactions}
		err := manager.ValidateCoinbaseTransaction(block, utxoSet, blockHeight)
		if test.expectedError == nil {
			if err != nil {
				t.Errorf("TestValidateCoinbaseTransaction: %s: unexpected error: %+v", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.expectedError) {
			t.Errorf("TestValidateCoinbaseTransaction: %s: expected %s, got: %v", test.name, test.expectedError, err)
		}
	}
}
