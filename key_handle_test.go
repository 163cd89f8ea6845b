package go_certverify

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
)

// TestSignDigestVerifiesPerAlgorithm verifies each supported key type
// signs a digest that the matching verification capability accepts.
func TestSignDigestVerifiesPerAlgorithm(t *testing.T) {
	tests := []struct {
		name   string
		keyAlg SignatureAlgorithm
		scheme SignatureScheme
	}{
		{"RSA-PKCS1 SHA-256", SIG_RSA_PKCS1, RSA_PKCS1_SHA256},
		{"ECDSA P-256 SHA-256", SIG_ECDSA, ECDSA_P256_SHA256},
		{"Ed25519", SIG_ED25519, ED25519},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, pub := testKey(t, tt.keyAlg)
			digest := testDigest(tt.scheme.HashAlg)

			signature, err := handle.SignDigest(tt.scheme, digest)
			if err != nil {
				t.Fatalf("signing failed: %v", err)
			}
			if len(signature) == 0 || len(signature) > MAX_SIGNATURE_SIZE {
				t.Fatalf("signature of %d bytes outside the allowed range", len(signature))
			}
			if err := verifyDigestSignature(pub, tt.scheme, digest, signature); err != nil {
				t.Fatalf("verification failed: %v", err)
			}
		})
	}
}

// testDigest produces a digest of the right width for a hash algorithm.
func testDigest(alg HashAlgorithm) []byte {
	store, err := NewTranscriptHashStore(alg)
	if err != nil {
		panic(err)
	}
	store.Update([]byte("digest input"))
	snapshot, err := store.Snapshot(alg)
	if err != nil {
		panic(err)
	}
	return snapshot.Sum(nil)
}

// TestSignDigestRejectsSchemeMismatch verifies a key refuses a scheme
// for a different algorithm.
func TestSignDigestRejectsSchemeMismatch(t *testing.T) {
	handle, _ := testKey(t, SIG_ECDSA)
	digest := sha256.Sum256([]byte("digest input"))
	if _, err := handle.SignDigest(RSA_PKCS1_SHA256, digest[:]); !errors.Is(err, ErrKeyOperation) {
		t.Fatalf("got %v, want ErrKeyOperation", err)
	}
}

// TestVerifyRejectsWrongKeyType verifies a public key whose type does
// not match the negotiated scheme is reported as a key fault, not a
// signature mismatch.
func TestVerifyRejectsWrongKeyType(t *testing.T) {
	_, pub := testKey(t, SIG_ECDSA)
	digest := sha256.Sum256([]byte("digest input"))
	err := verifyDigestSignature(pub, RSA_PKCS1_SHA256, digest[:], make([]byte, 256))
	if !errors.Is(err, ErrKeyOperation) {
		t.Fatalf("got %v, want ErrKeyOperation", err)
	}
}

// TestParseKeyHandleFromPEM verifies a PKCS#8 PEM key parses into a
// working handle.
func TestParseKeyHandleFromPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ECDSA keygen failed: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("PKCS#8 marshal failed: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	handle, err := ParseKeyHandle(pemBytes)
	if err != nil {
		t.Fatalf("ParseKeyHandle failed: %v", err)
	}
	if handle.Algorithm() != SIG_ECDSA {
		t.Fatalf("got algorithm %d, want SIG_ECDSA", handle.Algorithm())
	}

	digest := sha256.Sum256([]byte("digest input"))
	signature, err := handle.SignDigest(ECDSA_P256_SHA256, digest[:])
	if err != nil {
		t.Fatalf("signing with parsed key failed: %v", err)
	}
	if err := verifyDigestSignature(&key.PublicKey, ECDSA_P256_SHA256, digest[:], signature); err != nil {
		t.Fatalf("verification failed: %v", err)
	}
}
