package model

import "github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"

// BlockStore represents a durable store of the chain's blocks, indexed by height
type BlockStore interface {
	StoreBlock(blockHeight uint64, block *externalapi.DomainBlock) error
	Block(blockHeight uint64) (*externalapi.DomainBlock, error)
	Count() (uint64, error)
}
