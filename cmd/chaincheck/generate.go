package main

import (
	"math/big"
	"math/rand"
	"time"

	"github.com/kaspanet/ledgercore/domain/chainconfig"
	"github.com/kaspanet/ledgercore/domain/consensus"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/processes/coinbasemanager"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/merkle"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/mining"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/signing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/transactionhelper"
)

// generateBlocks appends count blocks holding only a coinbase transaction,
// all paying to a freshly generated key
func generateBlocks(chain *consensus.Consensus, params *chainconfig.Params, count uint64) error {
	keyPair, err := signing.GenerateKeyPair()
	if err != nil {
		return err
	}
	publicKey, err := keyPair.PublicKey()
	if err != nil {
		return err
	}
	log.Infof("Generating %d blocks paying to %s", count, publicKey)

	coinbaseManager := coinbasemanager.New(params)
	rd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := uint64(0); i < count; i++ {
		blockHeight := chain.BlockHeight()
		coinbase := transactionhelper.NewCoinbaseTransaction(
			transactionhelper.NewTransactionOutput(coinbaseManager.CalcBlockSubsidy(blockHeight), publicKey))
		transactions := []*externalapi.DomainTransaction{coinbase}

		block := &externalapi.DomainBlock{
			Header: &externalapi.DomainBlockHeader{
				TimeInMilliseconds: time.Now().UnixNano() / int64(time.Millisecond),
				HashMerkleRoot:     *merkle.CalculateHashMerkleRoot(transactions),
			},
			Transactions: transactions,
		}

		tip, ok := chain.Tip()
		if !ok {
			block.Header.PrevBlockHash = *hashes.Zero()
			block.Header.Target = new(big.Int).Set(params.GenesisTarget)
		} else {
			block.Header.PrevBlockHash = *consensushashing.BlockHash(tip)
			block.Header.Target = new(big.Int).Set(params.PowMax)
			if block.Header.TimeInMilliseconds <= tip.Header.TimeInMilliseconds {
				block.Header.TimeInMilliseconds = tip.Header.TimeInMilliseconds + 1
			}
			mining.SolveBlock(block, rd)
		}

		err = chain.AddBlock(block)
		if err != nil {
			return err
		}
		log.Debugf("Generated block %s at height %d", consensushashing.BlockHash(block), blockHeight)
	}
	return nil
}

func blockHashString(block *externalapi.DomainBlock) string {
	return consensushashing.BlockHash(block).String()
}
