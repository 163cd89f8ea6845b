package go_certverify

import (
	"crypto"
	"fmt"

	"go.step.sm/crypto/pemutil"
)

// PEM Key Loading
//
// Convenience constructors for building key handles and peer key
// references from PEM material. Parsing delegates to
// go.step.sm/crypto/pemutil, which handles PKCS#1, PKCS#8, SEC1 and
// PUBLIC KEY blocks uniformly.

// LoadKeyHandle reads a PEM private key file and wraps it in an
// immediate-mode LocalKeyHandle.
func LoadKeyHandle(filename string) (*LocalKeyHandle, error) {
	key, err := pemutil.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %q: %w", filename, err)
	}
	return NewLocalKeyHandle(key)
}

// ParseKeyHandle parses PEM private key bytes and wraps them in an
// immediate-mode LocalKeyHandle.
func ParseKeyHandle(pemBytes []byte) (*LocalKeyHandle, error) {
	key, err := pemutil.Parse(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return NewLocalKeyHandle(key)
}

// ParsePeerPublicKey parses PEM public key bytes for use as a
// connection's peer key on the receive path.
func ParsePeerPublicKey(pemBytes []byte) (crypto.PublicKey, error) {
	key, err := pemutil.Parse(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	if _, err := publicKeyAlgorithm(key); err != nil {
		return nil, err
	}
	return key, nil
}
