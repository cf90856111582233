package utxo

import (
	"sort"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

type utxoOutpointEntryPair struct {
	outpoint externalapi.DomainOutpoint
	entry    externalapi.UTXOEntry
}

type utxoCollectionIterator struct {
	index    int
	pairs    []utxoOutpointEntryPair
	isClosed bool
}

func newCollectionIterator(entries map[externalapi.DomainOutpoint]externalapi.UTXOEntry) externalapi.ReadOnlyUTXOSetIterator {
	pairs := make([]utxoOutpointEntryPair, 0, len(entries))
	for outpoint, entry := range entries {
		pairs = append(pairs, utxoOutpointEntryPair{
			outpoint: outpoint,
			entry:    entry,
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return lessOutpoint(&pairs[i].outpoint, &pairs[j].outpoint)
	})
	return &utxoCollectionIterator{index: -1, pairs: pairs}
}

func lessOutpoint(a, b *externalapi.DomainOutpoint) bool {
	if !a.TransactionID.Equal(&b.TransactionID) {
		return hashes.Less((*externalapi.DomainHash)(&a.TransactionID), (*externalapi.DomainHash)(&b.TransactionID))
	}
	return a.Index < b.Index
}

func (u *utxoCollectionIterator) First() bool {
	if u.isClosed {
		panic("Tried using a closed utxoCollectionIterator")
	}
	u.index = 0
	return len(u.pairs) > 0
}

func (u *utxoCollectionIterator) Next() bool {
	if u.isClosed {
		panic("Tried using a closed utxoCollectionIterator")
	}
	u.index++
	return u.index < len(u.pairs)
}

func (u *utxoCollectionIterator) Get() (outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry, err error) {
	if u.isClosed {
		return nil, nil, errors.New("Tried using a closed utxoCollectionIterator")
	}
	if u.index < 0 || u.index >= len(u.pairs) {
		return nil, nil, errors.Errorf("iterator index %d is out of range", u.index)
	}
	pair := u.pairs[u.index]
	outpointClone := pair.outpoint
	return &outpointClone, pair.entry, nil
}

func (u *utxoCollectionIterator) Close() error {
	if u.isClosed {
		return errors.New("Tried closing an already closed utxoCollectionIterator")
	}
	u.isClosed = true
	u.pairs = nil
	return nil
}
