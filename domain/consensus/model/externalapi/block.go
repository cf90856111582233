package externalapi

import "math/big"

// DomainBlock represents a ledger block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainBlock{&DomainBlockHeader{}, []*DomainTransaction{}}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// DomainBlockHeader represents the header part of a ledger block.
// Target is the 256-bit threshold the header's own hash must not exceed.
type DomainBlockHeader struct {
	TimeInMilliseconds int64
	Nonce              uint64
	PrevBlockHash      DomainHash
	HashMerkleRoot     DomainHash
	Target             *big.Int
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	var targetClone *big.Int
	if header.Target != nil {
		targetClone = new(big.Int).Set(header.Target)
	}

	return &DomainBlockHeader{
		TimeInMilliseconds: header.TimeInMilliseconds,
		Nonce:              header.Nonce,
		PrevBlockHash:      header.PrevBlockHash,
		HashMerkleRoot:     header.HashMerkleRoot,
		Target:             targetClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, 0, DomainHash{}, DomainHash{}, &big.Int{}}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.TimeInMilliseconds != other.TimeInMilliseconds {
		return false
	}

	if header.Nonce != other.Nonce {
		return false
	}

	if !header.PrevBlockHash.Equal(&other.PrevBlockHash) {
		return false
	}

	if !header.HashMerkleRoot.Equal(&other.HashMerkleRoot) {
		return false
	}

	if header.Target == nil || other.Target == nil {
		return header.Target == other.Target
	}

	return header.Target.Cmp(other.Target) == 0
}
