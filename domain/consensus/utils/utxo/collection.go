package utxo

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/multiset"
)

// Collection is a set of unspent transaction outputs keyed by outpoint,
// along with a multiset commitment to its content that is kept up to date
// on every Add and Remove.
//
// Collection is not safe for concurrent modification.
type Collection struct {
	entries  map[externalapi.DomainOutpoint]externalapi.UTXOEntry
	multiset model.Multiset
}

// NewCollection returns an empty Collection
func NewCollection() *Collection {
	return &Collection{
		entries:  make(map[externalapi.DomainOutpoint]externalapi.UTXOEntry),
		multiset: multiset.New(),
	}
}

// Get returns the entry of the given outpoint, if it is unspent
func (c *Collection) Get(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool) {
	entry, ok := c.entries[*outpoint]
	return entry, ok
}

// Contains returns whether the given outpoint is unspent
func (c *Collection) Contains(outpoint *externalapi.DomainOutpoint) bool {
	_, ok := c.entries[*outpoint]
	return ok
}

// Len returns the number of unspent outputs in the collection
func (c *Collection) Len() int {
	return len(c.entries)
}

// Iterator returns an iterator over the collection, ordered by outpoint
func (c *Collection) Iterator() externalapi.ReadOnlyUTXOSetIterator {
	return newCollectionIterator(c.entries)
}

// Add inserts entry under outpoint. An entry previously stored under the
// same outpoint is replaced, and leaves the commitment.
func (c *Collection) Add(outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) {
	if previous, ok := c.entries[*outpoint]; ok {
		removeFromMultiset(c.multiset, outpoint, previous)
	}
	c.entries[*outpoint] = entry
	addToMultiset(c.multiset, outpoint, entry)
}

// Remove deletes the entry of outpoint and reports whether there was one
func (c *Collection) Remove(outpoint *externalapi.DomainOutpoint) bool {
	entry, ok := c.entries[*outpoint]
	if !ok {
		return false
	}
	delete(c.entries, *outpoint)
	removeFromMultiset(c.multiset, outpoint, entry)
	return true
}

// Commitment returns the multiset hash of every (outpoint, entry) pair in the collection.
// Two collections with the same content have the same commitment regardless of the
// order their entries were added in.
func (c *Collection) Commitment() *externalapi.DomainHash {
	return c.multiset.Hash()
}

// Clone returns a deep copy of the collection
func (c *Collection) Clone() *Collection {
	entriesClone := make(map[externalapi.DomainOutpoint]externalapi.UTXOEntry, len(c.entries))
	for outpoint, entry := range c.entries {
		// Entries are immutable, so they may be shared
		entriesClone[outpoint] = entry
	}
	return &Collection{
		entries:  entriesClone,
		multiset: c.multiset.Clone(),
	}
}

func addToMultiset(ms model.Multiset, outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) {
	ms.Add(SerializeUTXO(entry, outpoint))
}

func removeFromMultiset(ms model.Multiset, outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) {
	ms.Remove(SerializeUTXO(entry, outpoint))
}
