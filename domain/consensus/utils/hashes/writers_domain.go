package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	transactionHashDomain       = "TransactionHash"
	transactionOutputHashDomain = "TransactionOutputHash"
	blockDomain                 = "BlockHash"
	merkleBranchDomain          = "MerkleBranchHash"
)

// NewTransactionHashWriter Returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return newDomainHashWriter(transactionHashDomain)
}

// NewTransactionOutputHashWriter Returns a new HashWriter used for hashing a single
// transaction output. This is the digest an input's signature commits to.
func NewTransactionOutputHashWriter() HashWriter {
	return newDomainHashWriter(transactionOutputHashDomain)
}

// NewBlockHashWriter Returns a new HashWriter used for hashing blocks
func NewBlockHashWriter() HashWriter {
	return newDomainHashWriter(blockDomain)
}

// NewMerkleBranchHashWriter Returns a new HashWriter used for a merkle tree branch
func NewMerkleBranchHashWriter() HashWriter {
	return newDomainHashWriter(merkleBranchDomain)
}

func newDomainHashWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}
