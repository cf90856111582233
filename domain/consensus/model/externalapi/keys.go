package externalapi

import "encoding/hex"

// DomainPublicKeySize is the size of a serialized x-only Schnorr public key
const DomainPublicKeySize = 32

// DomainSignatureSize is the size of a serialized Schnorr signature
const DomainSignatureSize = 64

// DomainPublicKey is the serialized public key that owns a transaction output.
// It is plain data: whether it is a valid curve point is only checked on use.
type DomainPublicKey [DomainPublicKeySize]byte

// String returns the public key as a hexadecimal string
func (key DomainPublicKey) String() string {
	return hex.EncodeToString(key[:])
}

// DomainSignature is a serialized signature authorizing the spend of a transaction output
type DomainSignature [DomainSignatureSize]byte

// String returns the signature as a hexadecimal string
func (signature DomainSignature) String() string {
	return hex.EncodeToString(signature[:])
}
