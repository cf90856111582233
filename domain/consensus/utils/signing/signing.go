package signing

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// PrivateKeySize is the size of a serialized private key
const PrivateKeySize = secp256k1.SerializedPrivateKeySize

// KeyPair is a Schnorr key pair over the secp256k1 curve
type KeyPair struct {
	keyPair *secp256k1.SchnorrKeyPair
}

// GenerateKeyPair generates a new random key pair
func GenerateKeyPair() (*KeyPair, error) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate a key pair")
	}
	return &KeyPair{keyPair: keyPair}, nil
}

// PrivateKeyFromBytes deserializes a private key previously serialized
// with SerializePrivateKey
func PrivateKeyFromBytes(privateKeyBytes []byte) (*KeyPair, error) {
	if len(privateKeyBytes) != PrivateKeySize {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidPrivateKey, "private key is %d bytes, while it "+
			"should be %d", len(privateKeyBytes), PrivateKeySize)
	}
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKeyBytes)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidPrivateKey, "%s", err)
	}
	return &KeyPair{keyPair: keyPair}, nil
}

// SerializePrivateKey returns the private key bytes. Handle with care.
func (kp *KeyPair) SerializePrivateKey() []byte {
	serialized := kp.keyPair.SerializePrivateKey()
	return serialized[:]
}

// PublicKey returns the serialized public key of the key pair
func (kp *KeyPair) PublicKey() (externalapi.DomainPublicKey, error) {
	publicKey, err := kp.keyPair.SchnorrPublicKey()
	if err != nil {
		return externalapi.DomainPublicKey{}, errors.WithStack(err)
	}
	serialized, err := publicKey.Serialize()
	if err != nil {
		return externalapi.DomainPublicKey{}, errors.WithStack(err)
	}
	return externalapi.DomainPublicKey(*serialized), nil
}

// PublicKeyFromBytes validates that the given bytes are a serialized public key
// on the curve, and returns them as a DomainPublicKey
func PublicKeyFromBytes(publicKeyBytes []byte) (externalapi.DomainPublicKey, error) {
	if len(publicKeyBytes) != externalapi.DomainPublicKeySize {
		return externalapi.DomainPublicKey{}, errors.Wrapf(ruleerrors.ErrInvalidPublicKey,
			"public key is %d bytes, while it should be %d", len(publicKeyBytes), externalapi.DomainPublicKeySize)
	}
	_, err := secp256k1.DeserializeSchnorrPubKey(publicKeyBytes)
	if err != nil {
		return externalapi.DomainPublicKey{}, errors.Wrapf(ruleerrors.ErrInvalidPublicKey, "%s", err)
	}
	var publicKey externalapi.DomainPublicKey
	copy(publicKey[:], publicKeyBytes)
	return publicKey, nil
}

// Sign signs the given hash with the private key of kp
func Sign(hash *externalapi.DomainHash, kp *KeyPair) (externalapi.DomainSignature, error) {
	secpHash := secp256k1.Hash(*hash.ByteArray())
	signature, err := kp.keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return externalapi.DomainSignature{}, errors.Errorf("cannot sign hash: %s", err)
	}
	return externalapi.DomainSignature(*signature.Serialize()), nil
}

// Verify returns whether signature is a valid signature of hash by the owner of publicKey.
// Malformed signatures and public keys are reported as invalid.
func Verify(signature externalapi.DomainSignature, hash *externalapi.DomainHash,
	publicKey externalapi.DomainPublicKey) bool {

	if hash == nil {
		return false
	}
	secpPublicKey, err := secp256k1.DeserializeSchnorrPubKey(publicKey[:])
	if err != nil {
		return false
	}
	secpSignature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signature[:])
	if err != nil {
		return false
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	return secpPublicKey.SchnorrVerify(&secpHash, secpSignature)
}
