package serialization

import (
	"bytes"
	"io"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// Minimal encoded sizes, used to reject element counts that can't fit in
// the remaining bytes before allocating for them.
const (
	encodedOutpointSize    = externalapi.DomainHashSize + 4
	encodedInputSize       = encodedOutpointSize + externalapi.DomainSignatureSize
	encodedOutputSize      = 8 + 16 + externalapi.DomainPublicKeySize
	encodedTransactionSize = 8 + 8
)

// SerializeBlock returns the canonical encoding of the given block.
// This is the same encoding that block and transaction hashes are computed over.
func SerializeBlock(block *externalapi.DomainBlock) ([]byte, error) {
	w := &bytes.Buffer{}
	err := WriteBlock(w, block)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// DeserializeBlock decodes a block previously encoded with SerializeBlock.
// Trailing bytes are rejected, so every block has exactly one encoding.
func DeserializeBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	r := bytes.NewReader(blockBytes)
	block, err := readBlock(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after block", r.Len())
	}
	return block, nil
}

// WriteBlock writes the canonical encoding of block to w
func WriteBlock(w io.Writer, block *externalapi.DomainBlock) error {
	err := WriteHeader(w, block.Header)
	if err != nil {
		return err
	}

	err = WriteElement(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err = WriteTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteHeader writes the canonical encoding of header to w
func WriteHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.TimeInMilliseconds, header.Nonce, header.PrevBlockHash,
		header.HashMerkleRoot, header.Target)
}

// WriteTransaction writes the canonical encoding of tx to w
func WriteTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	err := WriteElement(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = WriteElements(w, input.PreviousOutpoint.TransactionID, input.PreviousOutpoint.Index, input.Signature)
		if err != nil {
			return err
		}
	}

	err = WriteElement(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = WriteTransactionOutput(w, output)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTransactionOutput writes the canonical encoding of output to w
func WriteTransactionOutput(w io.Writer, output *externalapi.DomainTransactionOutput) error {
	return WriteElements(w, output.Value, output.UniqueID, output.PublicKey)
}

// WriteOutpoint writes the canonical encoding of outpoint to w
func WriteOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	return WriteElements(w, outpoint.TransactionID, outpoint.Index)
}

func readBlock(r *bytes.Reader) (*externalapi.DomainBlock, error) {
	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	transactionCount, err := readCount(r, encodedTransactionSize)
	if err != nil {
		return nil, err
	}
	transactions := make([]*externalapi.DomainTransaction, transactionCount)
	for i := range transactions {
		transactions[i], err = readTransaction(r)
		if err != nil {
			return nil, err
		}
	}

	return &externalapi.DomainBlock{
		Header:       header,
		Transactions: transactions,
	}, nil
}

func readHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.TimeInMilliseconds, &header.Nonce, &header.PrevBlockHash,
		&header.HashMerkleRoot, &header.Target)
	if err != nil {
		return nil, err
	}
	return header, nil
}

func readTransaction(r *bytes.Reader) (*externalapi.DomainTransaction, error) {
	inputCount, err := readCount(r, encodedInputSize)
	if err != nil {
		return nil, err
	}
	inputs := make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range inputs {
		input := &externalapi.DomainTransactionInput{}
		err = ReadElements(r, &input.PreviousOutpoint.TransactionID, &input.PreviousOutpoint.Index, &input.Signature)
		if err != nil {
			return nil, err
		}
		inputs[i] = input
	}

	outputCount, err := readCount(r, encodedOutputSize)
	if err != nil {
		return nil, err
	}
	outputs := make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range outputs {
		outputs[i], err = ReadTransactionOutput(r)
		if err != nil {
			return nil, err
		}
	}

	return &externalapi.DomainTransaction{
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

// ReadTransactionOutput reads an output written by WriteTransactionOutput
func ReadTransactionOutput(r io.Reader) (*externalapi.DomainTransactionOutput, error) {
	output := &externalapi.DomainTransactionOutput{}
	err := ReadElements(r, &output.Value, &output.UniqueID, &output.PublicKey)
	if err != nil {
		return nil, err
	}
	return output, nil
}

func readCount(r *bytes.Reader, minElementSize int) (uint64, error) {
	var count uint64
	err := ReadElement(r, &count)
	if err != nil {
		return 0, err
	}
	if count > uint64(r.Len()/minElementSize) {
		return 0, errors.Wrapf(errMalformed, "element count %d can't fit in the remaining %d bytes",
			count, r.Len())
	}
	return count, nil
}
