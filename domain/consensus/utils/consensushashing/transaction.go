package consensushashing

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/hashes"
	"github.com/kaspanet/ledgercore/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionHash returns the hash of the whole transaction, signatures included
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := serialization.WriteTransaction(writer, tx)
	if err != nil {
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail for structurally-valid transactions"))
	}

	return writer.Finalize()
}

// TransactionID generates the ID that the outputs of tx are addressed by.
// It is the transaction's hash.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	return (*externalapi.DomainTransactionID)(TransactionHash(tx))
}

// TransactionOutputHash returns the hash of a single transaction output.
// Inputs spending this output sign this hash.
func TransactionOutputHash(output *externalapi.DomainTransactionOutput) *externalapi.DomainHash {
	writer := hashes.NewTransactionOutputHashWriter()
	err := serialization.WriteTransactionOutput(writer, output)
	if err != nil {
		panic(errors.Wrap(err, "TransactionOutputHash() failed. this should never happen"))
	}

	return writer.Finalize()
}

// OutpointsOf returns the outpoints of all of tx's outputs, in order
func OutpointsOf(tx *externalapi.DomainTransaction) []*externalapi.DomainOutpoint {
	id := TransactionID(tx)
	outpoints := make([]*externalapi.DomainOutpoint, len(tx.Outputs))
	for i := range tx.Outputs {
		outpoints[i] = externalapi.NewDomainOutpoint(id, uint32(i))
	}
	return outpoints
}
