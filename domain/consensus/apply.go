package consensus

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/utxo"
)

// applyBlock spends every outpoint referenced by the block's inputs and adds
// every output it creates. Blocks must be validated beforehand, except for the
// genesis block whose transactions are trusted.
func applyBlock(utxoSet *utxo.Collection, block *externalapi.DomainBlock, blockHeight uint64) {
	for i, tx := range block.Transactions {
		for _, input := range tx.Inputs {
			utxoSet.Remove(&input.PreviousOutpoint)
		}

		isCoinbase := i == 0 && len(tx.Inputs) == 0
		for index, outpoint := range consensushashing.OutpointsOf(tx) {
			utxoSet.Add(outpoint, utxo.NewUTXOEntry(tx.Outputs[index], blockHeight, isCoinbase))
		}
	}
}
