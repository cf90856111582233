package utxo

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
)

type utxoEntry struct {
	output      *externalapi.DomainTransactionOutput
	blockHeight uint64
	isCoinbase  bool
}

// NewUTXOEntry creates a new utxoEntry representing the given output
func NewUTXOEntry(output *externalapi.DomainTransactionOutput, blockHeight uint64,
	isCoinbase bool) externalapi.UTXOEntry {

	return &utxoEntry{
		output:      output.Clone(),
		blockHeight: blockHeight,
		isCoinbase:  isCoinbase,
	}
}

// Output returns a copy of the output this entry represents
func (u *utxoEntry) Output() *externalapi.DomainTransactionOutput {
	return u.output.Clone()
}

func (u *utxoEntry) Amount() uint64 {
	return u.output.Value
}

func (u *utxoEntry) PublicKey() externalapi.DomainPublicKey {
	return u.output.PublicKey
}

func (u *utxoEntry) BlockHeight() uint64 {
	return u.blockHeight
}

func (u *utxoEntry) IsCoinbase() bool {
	return u.isCoinbase
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal accordingly.
var _ = &utxoEntry{&externalapi.DomainTransactionOutput{}, 0, false}

// Equal returns whether entry equals to other
func (u *utxoEntry) Equal(other externalapi.UTXOEntry) bool {
	if u == nil || other == nil {
		return u == nil && other == nil
	}

	otherEntry, ok := other.(*utxoEntry)
	if !ok {
		panic("utxoEntry is the only implementation of UTXOEntry")
	}

	if otherEntry == nil {
		return false
	}

	return u.output.Equal(otherEntry.output) &&
		u.blockHeight == otherEntry.blockHeight &&
		u.isCoinbase == otherEntry.isCoinbase
}
