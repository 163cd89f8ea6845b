package go_certverify

import (
	"crypto"
	"fmt"
)

// HashAlgorithm identifies the transcript hash algorithm half of a
// signature scheme.
type HashAlgorithm uint8

const (
	HASH_NONE HashAlgorithm = iota
	HASH_SHA1
	HASH_SHA256
	HASH_SHA384
	HASH_SHA512
)

// SignatureAlgorithm identifies the public-key algorithm half of a
// signature scheme.
type SignatureAlgorithm uint8

const (
	SIG_NONE SignatureAlgorithm = iota
	SIG_RSA_PKCS1
	SIG_ECDSA
	SIG_ED25519
)

// SignatureScheme pairs a hash algorithm with a signature algorithm under
// the IANA identifier transmitted on the wire for TLS 1.2 and later.
// Values are immutable; a scheme is selected once per handshake for the
// CertificateVerify message and cached on the connection, so it stays
// stable across a suspend/resume cycle.
type SignatureScheme struct {
	IANAValue uint16
	HashAlg   HashAlgorithm
	SigAlg    SignatureAlgorithm
}

// Supported signature schemes. The Ed25519 scheme carries HASH_SHA512
// because this processor signs transcript digests, and the 64-byte
// SHA-512 transcript digest is the input handed to the Ed25519 signer on
// both sides.
var (
	RSA_PKCS1_SHA1    = SignatureScheme{SIG_SCHEME_RSA_PKCS1_SHA1, HASH_SHA1, SIG_RSA_PKCS1}
	ECDSA_SHA1        = SignatureScheme{SIG_SCHEME_ECDSA_SHA1, HASH_SHA1, SIG_ECDSA}
	RSA_PKCS1_SHA256  = SignatureScheme{SIG_SCHEME_RSA_PKCS1_SHA256, HASH_SHA256, SIG_RSA_PKCS1}
	ECDSA_P256_SHA256 = SignatureScheme{SIG_SCHEME_ECDSA_P256_SHA256, HASH_SHA256, SIG_ECDSA}
	RSA_PKCS1_SHA384  = SignatureScheme{SIG_SCHEME_RSA_PKCS1_SHA384, HASH_SHA384, SIG_RSA_PKCS1}
	ECDSA_P384_SHA384 = SignatureScheme{SIG_SCHEME_ECDSA_P384_SHA384, HASH_SHA384, SIG_ECDSA}
	RSA_PKCS1_SHA512  = SignatureScheme{SIG_SCHEME_RSA_PKCS1_SHA512, HASH_SHA512, SIG_RSA_PKCS1}
	ECDSA_P521_SHA512 = SignatureScheme{SIG_SCHEME_ECDSA_P521_SHA512, HASH_SHA512, SIG_ECDSA}
	ED25519           = SignatureScheme{SIG_SCHEME_ED25519, HASH_SHA512, SIG_ED25519}
)

// supportedSignatureSchemes maps IANA identifiers to scheme values for
// wire decoding.
var supportedSignatureSchemes = map[uint16]SignatureScheme{
	SIG_SCHEME_RSA_PKCS1_SHA1:    RSA_PKCS1_SHA1,
	SIG_SCHEME_ECDSA_SHA1:        ECDSA_SHA1,
	SIG_SCHEME_RSA_PKCS1_SHA256:  RSA_PKCS1_SHA256,
	SIG_SCHEME_ECDSA_P256_SHA256: ECDSA_P256_SHA256,
	SIG_SCHEME_RSA_PKCS1_SHA384:  RSA_PKCS1_SHA384,
	SIG_SCHEME_ECDSA_P384_SHA384: ECDSA_P384_SHA384,
	SIG_SCHEME_RSA_PKCS1_SHA512:  RSA_PKCS1_SHA512,
	SIG_SCHEME_ECDSA_P521_SHA512: ECDSA_P521_SHA512,
	SIG_SCHEME_ED25519:           ED25519,
}

// SignatureSchemeByID looks up a supported scheme by its IANA identifier.
func SignatureSchemeByID(id uint16) (SignatureScheme, error) {
	scheme, ok := supportedSignatureSchemes[id]
	if !ok {
		return SignatureScheme{}, fmt.Errorf("unknown signature scheme 0x%04x: %w", id, ErrMalformedMessage)
	}
	return scheme, nil
}

// cryptoHash maps a HashAlgorithm to the stdlib crypto.Hash used by the
// RSA-PKCS1 signing and verification primitives.
func cryptoHash(alg HashAlgorithm) (crypto.Hash, error) {
	switch alg {
	case HASH_SHA1:
		return crypto.SHA1, nil
	case HASH_SHA256:
		return crypto.SHA256, nil
	case HASH_SHA384:
		return crypto.SHA384, nil
	case HASH_SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("no crypto.Hash for hash algorithm %d: %w", alg, ErrHashUnavailable)
	}
}
