package utxo

import (
	"bytes"
	"io"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// SerializeUTXO returns the byte-slice representation for given UTXOEntry-outpoint pair.
// This is the element the collection commitment is made of.
func SerializeUTXO(entry externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint) []byte {
	w := &bytes.Buffer{}

	err := serialization.WriteOutpoint(w, outpoint)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. writing to a bytes.Buffer never fails"))
	}

	err = serializeUTXOEntry(w, entry)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. writing to a bytes.Buffer never fails"))
	}

	return w.Bytes()
}

func serializeUTXOEntry(w io.Writer, entry externalapi.UTXOEntry) error {
	err := serialization.WriteElements(w, entry.BlockHeight(), entry.IsCoinbase())
	if err != nil {
		return err
	}

	return serialization.WriteTransactionOutput(w, entry.Output())
}
