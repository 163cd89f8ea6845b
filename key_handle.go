package go_certverify

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	cryptoed25519 "github.com/go-i2p/crypto/ed25519"
)

// KeyHandle abstracts the private-key signing capability used on the
// send path. Implementations come in two execution modes:
//
//   - Immediate: SignDigest returns the signature bytes directly.
//   - Deferred: SignDigest returns ErrOperationPending; the send path
//     suspends and the surrounding driver later delivers the signature
//     through AsyncKeyOperation.Complete or Connection.ResumeSigning.
//
// Verification is never deferred; only signing participates in the
// suspend/resume protocol.
type KeyHandle interface {
	// Algorithm reports the signature algorithm this key supports, used
	// to compute the pre-TLS1.2 default scheme and to pick a scheme from
	// the offered set.
	Algorithm() SignatureAlgorithm

	// SignDigest signs a transcript digest under the given scheme.
	SignDigest(scheme SignatureScheme, digest []byte) ([]byte, error)
}

// LocalKeyHandle is the immediate-mode KeyHandle backed by an in-process
// private key. Ed25519 signing delegates to github.com/go-i2p/crypto;
// RSA-PKCS1 and ECDSA use the stdlib primitives.
type LocalKeyHandle struct {
	algorithm  SignatureAlgorithm
	rsaKey     *rsa.PrivateKey
	ecdsaKey   *ecdsa.PrivateKey
	ed25519Key cryptoed25519.Ed25519PrivateKey
}

// NewLocalKeyHandle wraps a parsed private key. Supported key types are
// *rsa.PrivateKey, *ecdsa.PrivateKey and ed25519.PrivateKey.
func NewLocalKeyHandle(key interface{}) (*LocalKeyHandle, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return &LocalKeyHandle{algorithm: SIG_RSA_PKCS1, rsaKey: k}, nil
	case *ecdsa.PrivateKey:
		return &LocalKeyHandle{algorithm: SIG_ECDSA, ecdsaKey: k}, nil
	case ed25519.PrivateKey:
		edKey, err := cryptoed25519.CreateEd25519PrivateKeyFromBytes(k)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap Ed25519 private key: %w", err)
		}
		return &LocalKeyHandle{algorithm: SIG_ED25519, ed25519Key: edKey}, nil
	default:
		return nil, fmt.Errorf("unsupported private key type %T: %w", key, ErrKeyOperation)
	}
}

// Algorithm reports the signature algorithm of the wrapped key.
func (k *LocalKeyHandle) Algorithm() SignatureAlgorithm {
	return k.algorithm
}

// SignDigest signs the transcript digest under the given scheme. The
// scheme's signature algorithm must match the key.
func (k *LocalKeyHandle) SignDigest(scheme SignatureScheme, digest []byte) ([]byte, error) {
	if scheme.SigAlg != k.algorithm {
		return nil, fmt.Errorf("scheme 0x%04x does not match key algorithm: %w",
			scheme.IANAValue, ErrKeyOperation)
	}

	switch scheme.SigAlg {
	case SIG_RSA_PKCS1:
		hashID, err := cryptoHash(scheme.HashAlg)
		if err != nil {
			return nil, err
		}
		signature, err := rsa.SignPKCS1v15(rand.Reader, k.rsaKey, hashID, digest)
		if err != nil {
			return nil, fmt.Errorf("RSA signing failed: %w", ErrKeyOperation)
		}
		return signature, nil

	case SIG_ECDSA:
		signature, err := ecdsa.SignASN1(rand.Reader, k.ecdsaKey, digest)
		if err != nil {
			return nil, fmt.Errorf("ECDSA signing failed: %w", ErrKeyOperation)
		}
		return signature, nil

	case SIG_ED25519:
		signer, err := k.ed25519Key.NewSigner()
		if err != nil {
			return nil, fmt.Errorf("failed to create Ed25519 signer: %w", ErrKeyOperation)
		}
		signature, err := signer.SignHash(digest)
		if err != nil {
			return nil, fmt.Errorf("Ed25519 signing failed: %w", ErrKeyOperation)
		}
		return signature, nil

	default:
		return nil, fmt.Errorf("unsupported signature algorithm %d: %w", scheme.SigAlg, ErrKeyOperation)
	}
}

// AsyncKeyOperation represents an in-flight deferred signing request.
// It records everything needed to finish the message after the external
// signer responds: the transcript digest, the chosen scheme, and the
// connection whose staged output is waiting. The connection's generation
// at suspension time guards against completing into a connection that
// has since been torn down.
//
// Ownership: created by the send path, handed to the surrounding driver
// for the duration of the suspension, consumed by the first Complete.
type AsyncKeyOperation struct {
	conn       *Connection
	scheme     SignatureScheme
	digest     []byte
	generation uint32
	fired      bool
}

// Scheme returns the signature scheme the external signer must use.
func (op *AsyncKeyOperation) Scheme() SignatureScheme {
	return op.scheme
}

// Digest returns the transcript digest to sign.
func (op *AsyncKeyOperation) Digest() []byte {
	return op.digest
}

// Complete delivers the signature produced by the external signer and
// finishes the suspended CertificateVerify message.
//
// Firing twice is ErrInvalidResume. Firing after the connection has been
// torn down is a no-op: the operation is stale and must not touch
// connection state that may have been reset or reused.
func (op *AsyncKeyOperation) Complete(signature []byte) error {
	if op.fired {
		return fmt.Errorf("signing completion already fired: %w", ErrInvalidResume)
	}
	op.fired = true
	if op.conn.generation != op.generation {
		Debug("ignoring stale signing completion for torn-down connection")
		return nil
	}
	return op.conn.ResumeSigning(signature)
}
