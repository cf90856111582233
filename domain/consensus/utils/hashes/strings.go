package hashes

import (
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
)

// FromString creates a DomainHash from the hexadecimal string of a hash.
func FromString(hash string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(hash)
}
