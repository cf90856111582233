package model

import "github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"

// BlockValidator decides whether a candidate block may be appended to the chain
type BlockValidator interface {
	ValidateGenesisBlock(block *externalapi.DomainBlock) error
	ValidateBlock(block *externalapi.DomainBlock, tip *externalapi.DomainBlock,
		utxoSet externalapi.ReadOnlyUTXOSet, blockHeight uint64) error
}
