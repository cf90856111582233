package signing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kaspanet/ledgercore/domain/consensus/model/externalapi"
	"github.com/kaspanet/ledgercore/domain/consensus/ruleerrors"
)

func testHash(b byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{b})
}

func generateKeyPair(t *testing.T) (*KeyPair, externalapi.DomainPublicKey) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %+v", err)
	}
	publicKey, err := keyPair.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %+v", err)
	}
	return keyPair, publicKey
}

func TestSignAndVerify(t *testing.T) {
	keyPair, publicKey := generateKeyPair(t)
	_, otherPublicKey := generateKeyPair(t)

	hash := testHash(1)
	signature, err := Sign(hash, keyPair)
	if err != nil {
		t.Fatalf("TestSignAndVerify: Sign: %+v", err)
	}

	if !Verify(signature, hash, publicKey) {
		t.Fatalf("TestSignAndVerify: a valid signature did not verify")
	}
	if Verify(signature, testHash(2), publicKey) {
		t.Fatalf("TestSignAndVerify: signature verified over a different hash")
	}
	if Verify(signature, hash, otherPublicKey) {
		t.Fatalf("TestSignAndVerify: signature verified against a different public key")
	}

	tampered := signature
	tampered[10] ^= 0x01
	if Verify(tampered, hash, publicKey) {
		t.Fatalf("TestSignAndVerify: a tampered signature verified")
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	keyPair, publicKey := generateKeyPair(t)
	hash := testHash(3)
	signature, err := Sign(hash, keyPair)
	if err != nil {
		t.Fatalf("TestVerifyMalformedInput: Sign: %+v", err)
	}

	var allOnes externalapi.DomainSignature
	for i := range allOnes {
		allOnes[i] = 0xff
	}
	var notOnCurve externalapi.DomainPublicKey
	for i := range notOnCurve {
		notOnCurve[i] = 0xff
	}

	tests := []struct {
		name      string
		signature externalapi.DomainSignature
		hash      *externalapi.DomainHash
		publicKey externalapi.DomainPublicKey
	}{
		{name: "zero signature", signature: externalapi.DomainSignature{}, hash: hash, publicKey: publicKey},
		{name: "out of range signature", signature: allOnes, hash: hash, publicKey: publicKey},
		{name: "public key out of range", signature: signature, hash: hash, publicKey: notOnCurve},
		{name: "nil hash", signature: signature, hash: nil, publicKey: publicKey},
	}
	for _, test := range tests {
		if Verify(test.signature, test.hash, test.publicKey) {
			t.Errorf("TestVerifyMalformedInput: %s: expected verification to fail", test.name)
		}
	}
}

func TestPrivateKeySerialization(t *testing.T) {
	keyPair, publicKey := generateKeyPair(t)

	serialized := keyPair.SerializePrivateKey()
	deserialized, err := PrivateKeyFromBytes(serialized)
	if err != nil {
		t.Fatalf("TestPrivateKeySerialization: PrivateKeyFromBytes: %+v", err)
	}
	if !bytes.Equal(serialized, deserialized.SerializePrivateKey()) {
		t.Fatalf("TestPrivateKeySerialization: private key changed after deserialization")
	}

	deserializedPublicKey, err := deserialized.PublicKey()
	if err != nil {
		t.Fatalf("TestPrivateKeySerialization: PublicKey: %+v", err)
	}
	if deserializedPublicKey != publicKey {
		t.Fatalf("TestPrivateKeySerialization: expected public key %s, got %s", publicKey, deserializedPublicKey)
	}

	_, err = PrivateKeyFromBytes(serialized[:PrivateKeySize-1])
	if !errors.Is(err, ruleerrors.ErrInvalidPrivateKey) {
		t.Fatalf("TestPrivateKeySerialization: expected ErrInvalidPrivateKey for a short key, got: %v", err)
	}

	_, err = PrivateKeyFromBytes(make([]byte, PrivateKeySize))
	if !errors.Is(err, ruleerrors.ErrInvalidPrivateKey) {
		t.Fatalf("TestPrivateKeySerialization: expected ErrInvalidPrivateKey for a zero key, got: %v", err)
	}
}

func TestPublicKeyFromBytes(t *testing.T) {
	_, publicKey := generateKeyPair(t)

	parsed, err := PublicKeyFromBytes(publicKey[:])
	if err != nil {
		t.Fatalf("TestPublicKeyFromBytes: PublicKeyFromBytes: %+v", err)
	}
	if parsed != publicKey {
		t.Fatalf("TestPublicKeyFromBytes: expected %s, got %s", publicKey, parsed)
	}

	_, err = PublicKeyFromBytes(publicKey[:10])
	if !errors.Is(err, ruleerrors.ErrInvalidPublicKey) {
		t.Fatalf("TestPublicKeyFromBytes: expected ErrInvalidPublicKey for a short key, got: %v", err)
	}
}
