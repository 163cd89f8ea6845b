package go_certverify

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	cryptoed25519 "github.com/go-i2p/crypto/ed25519"
)

// Signature Verification Methods
//
// This file implements the verification capability consumed by the
// receive path. Ed25519 verification delegates to
// github.com/go-i2p/crypto/ed25519; RSA-PKCS1 and ECDSA use the stdlib
// primitives.
//
// Each helper returns true only when the signature verifies against the
// transcript digest. Malformed inputs are logged and reported as a plain
// mismatch; the caller maps false to ErrSignatureVerification, which is
// terminal for the handshake.

// verifyRSASignature verifies an RSA-PKCS1 signature over a digest.
func verifyRSASignature(pub *rsa.PublicKey, hashID crypto.Hash, digest, signature []byte) bool {
	if err := rsa.VerifyPKCS1v15(pub, hashID, digest, signature); err != nil {
		Debug("RSA signature verification failed: %v", err)
		return false
	}
	return true
}

// verifyECDSASignature verifies an ASN.1 DER encoded ECDSA signature
// over a digest.
func verifyECDSASignature(pub *ecdsa.PublicKey, digest, signature []byte) bool {
	if !ecdsa.VerifyASN1(pub, digest, signature) {
		Debug("ECDSA signature verification failed")
		return false
	}
	return true
}

// verifyEd25519Signature verifies an Ed25519 signature over a digest
// using github.com/go-i2p/crypto/ed25519.
func verifyEd25519Signature(pubKeyBytes, digest, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		Error("Invalid Ed25519 signature length: got %d, expected %d",
			len(signature), ed25519.SignatureSize)
		return false
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		Error("Invalid Ed25519 public key length: got %d, expected %d",
			len(pubKeyBytes), ed25519.PublicKeySize)
		return false
	}

	pubKey, err := cryptoed25519.CreateEd25519PublicKeyFromBytes(pubKeyBytes)
	if err != nil {
		Error("Failed to reconstruct Ed25519 public key: %v", err)
		return false
	}
	verifier, err := pubKey.NewVerifier()
	if err != nil {
		Error("Failed to create Ed25519 verifier: %v", err)
		return false
	}
	if err := verifier.VerifyHash(digest, signature); err != nil {
		Debug("Ed25519 signature verification failed: %v", err)
		return false
	}
	return true
}

// verifyDigestSignature dispatches to the verification primitive for the
// scheme and maps a mismatch to ErrSignatureVerification. A public key
// whose type does not match the scheme is ErrKeyOperation: the scheme
// negotiation already pinned the algorithm, so a mismatch here means the
// certificate chain handed us the wrong key.
func verifyDigestSignature(publicKey crypto.PublicKey, scheme SignatureScheme, digest, signature []byte) error {
	var ok bool
	switch scheme.SigAlg {
	case SIG_RSA_PKCS1:
		pub, isRSA := publicKey.(*rsa.PublicKey)
		if !isRSA {
			return fmt.Errorf("public key type %T does not match RSA scheme: %w", publicKey, ErrKeyOperation)
		}
		hashID, err := cryptoHash(scheme.HashAlg)
		if err != nil {
			return err
		}
		ok = verifyRSASignature(pub, hashID, digest, signature)

	case SIG_ECDSA:
		pub, isECDSA := publicKey.(*ecdsa.PublicKey)
		if !isECDSA {
			return fmt.Errorf("public key type %T does not match ECDSA scheme: %w", publicKey, ErrKeyOperation)
		}
		ok = verifyECDSASignature(pub, digest, signature)

	case SIG_ED25519:
		pub, isEd := publicKey.(ed25519.PublicKey)
		if !isEd {
			return fmt.Errorf("public key type %T does not match Ed25519 scheme: %w", publicKey, ErrKeyOperation)
		}
		ok = verifyEd25519Signature(pub, digest, signature)

	default:
		return fmt.Errorf("unsupported signature algorithm %d: %w", scheme.SigAlg, ErrKeyOperation)
	}

	if !ok {
		return fmt.Errorf("scheme 0x%04x: %w", scheme.IANAValue, ErrSignatureVerification)
	}
	return nil
}

// publicKeyAlgorithm infers the signature algorithm from a parsed public
// key, used to compute the peer's pre-TLS1.2 default scheme.
func publicKeyAlgorithm(publicKey crypto.PublicKey) (SignatureAlgorithm, error) {
	switch publicKey.(type) {
	case *rsa.PublicKey:
		return SIG_RSA_PKCS1, nil
	case *ecdsa.PublicKey:
		return SIG_ECDSA, nil
	case ed25519.PublicKey:
		return SIG_ED25519, nil
	default:
		return SIG_NONE, fmt.Errorf("unsupported public key type %T: %w", publicKey, ErrKeyOperation)
	}
}
