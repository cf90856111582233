package model

import "github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"

// Multiset represents a secure order-independent hash of a set of elements.
// The unspent-output commitment is kept as a Multiset.
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() *externalapi.DomainHash
	Clone() Multiset
}
