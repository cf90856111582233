package testutils

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/merkle"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/mining"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/signing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
)

// GenerateKeyPair generates a key pair and its public key, failing the test on error
func GenerateKeyPair(t *testing.T) (*signing.KeyPair, externalapi.DomainPublicKey) {
	keyPair, err := signing.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %+v", err)
	}
	publicKey, err := keyPair.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %+v", err)
	}
	return keyPair, publicKey
}

// SpentOutput is an unspent output along with the key pair that owns it
type SpentOutput struct {
	Outpoint *externalapi.DomainOutpoint
	Output   *externalapi.DomainTransactionOutput
	KeyPair  *signing.KeyPair
}

// OutputOf returns the index'th output of tx as a SpentOutput owned by keyPair
func OutputOf(tx *externalapi.DomainTransaction, index uint32, keyPair *signing.KeyPair) *SpentOutput {
	return &SpentOutput{
		Outpoint: externalapi.NewDomainOutpoint(consensushashing.TransactionID(tx), index),
		Output:   tx.Outputs[index],
		KeyPair:  keyPair,
	}
}

// NewSpendingTransaction returns a transaction spending the given outputs into outputs,
// with every input signed by the owner of the output it spends
func NewSpendingTransaction(t *testing.T, spent []*SpentOutput,
	outputs ...*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {

	inputs := make([]*externalapi.DomainTransactionInput, len(spent))
	for i, spentOutput := range spent {
		signature, err := signing.Sign(consensushashing.TransactionOutputHash(spentOutput.Output), spentOutput.KeyPair)
		if err != nil {
			t.Fatalf("Sign: %+v", err)
		}
		inputs[i] = &externalapi.DomainTransactionInput{
			PreviousOutpoint: *spentOutput.Outpoint,
			Signature:        signature,
		}
	}
	return &externalapi.DomainTransaction{
		Inputs:  inputs,
		Outputs: outputs,
	}
}

// NewCoinbase returns a coinbase transaction paying value to publicKey
func NewCoinbase(value uint64, publicKey externalapi.DomainPublicKey) *externalapi.DomainTransaction {
	return transactionhelper.NewCoinbaseTransaction(transactionhelper.NewTransactionOutput(value, publicKey))
}

// BuildGenesisBlock returns a genesis block holding the given transactions
func BuildGenesisBlock(params *chainconfig.Params, timeInMilliseconds int64,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			TimeInMilliseconds: timeInMilliseconds,
			PrevBlockHash:      *hashes.Zero(),
			HashMerkleRoot:     merkleRootOrZero(transactions),
			Target:             new(big.Int).Set(params.GenesisTarget),
		},
		Transactions: transactions,
	}
}

// BuildBlock returns a block on top of tip holding the given transactions,
// solved against params.PowMax
func BuildBlock(params *chainconfig.Params, tip *externalapi.DomainBlock, timeInMilliseconds int64,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			TimeInMilliseconds: timeInMilliseconds,
			PrevBlockHash:      *consensushashing.BlockHash(tip),
			HashMerkleRoot:     merkleRootOrZero(transactions),
			Target:             new(big.Int).Set(params.PowMax),
		},
		Transactions: transactions,
	}
	Solve(block)
	return block
}

// Solve re-solves block against its current target. It should be called after
// modifying a block built with BuildBlock.
func Solve(block *externalapi.DomainBlock) {
	mining.SolveBlock(block, rand.New(rand.NewSource(block.Header.TimeInMilliseconds)))
}

func merkleRootOrZero(transactions []*externalapi.DomainTransaction) externalapi.DomainHash {
	if len(transactions) == 0 {
		return *hashes.Zero()
	}
	return *merkle.CalculateHashMerkleRoot(transactions)
}
