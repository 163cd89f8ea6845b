package go_certverify

// TLS Protocol Constants
//
// This file contains constants defined by the TLS specifications that the
// CertificateVerify processor depends on. Protocol version values are the
// on-the-wire values from RFC 5246 (TLS 1.2) and RFC 8446 (TLS 1.3);
// signature scheme identifiers come from the IANA "TLS SignatureScheme"
// registry (RFC 8446 section 4.2.3, which also covers the TLS 1.2
// hash/signature algorithm pairs).
//
// Note: This library focuses solely on the CertificateVerify message.
// Cipher suite, extension, and alert constants are intentionally NOT
// defined here as they belong to the surrounding handshake driver, not to
// this message processor.

// TLS protocol version values (wire encoding, big-endian uint16).
const (
	TLS10 uint16 = 0x0301
	TLS11 uint16 = 0x0302
	TLS12 uint16 = 0x0303
	TLS13 uint16 = 0x0304
)

// Wire format constants for the CertificateVerify message.
const (
	// MAX_SIGNATURE_SIZE bounds the declared signature length on the wire.
	// The largest signature produced by a supported scheme is 512 bytes
	// (RSA-4096); 4096 leaves room for larger RSA keys while still
	// rejecting absurd length fields before any allocation.
	MAX_SIGNATURE_SIZE = 4096

	// HANDSHAKE_TYPE_CERTIFICATE_VERIFY is the HandshakeType value for
	// CertificateVerify per RFC 5246 section 7.4.
	HANDSHAKE_TYPE_CERTIFICATE_VERIFY uint8 = 15

	// HANDSHAKE_HEADER_SIZE is msg_type(1) + uint24 length(3).
	HANDSHAKE_HEADER_SIZE = 4
)

// IANA SignatureScheme identifiers (RFC 8446 section 4.2.3).
const (
	SIG_SCHEME_RSA_PKCS1_SHA1    uint16 = 0x0201
	SIG_SCHEME_ECDSA_SHA1        uint16 = 0x0203
	SIG_SCHEME_RSA_PKCS1_SHA256  uint16 = 0x0401
	SIG_SCHEME_ECDSA_P256_SHA256 uint16 = 0x0403
	SIG_SCHEME_RSA_PKCS1_SHA384  uint16 = 0x0501
	SIG_SCHEME_ECDSA_P384_SHA384 uint16 = 0x0503
	SIG_SCHEME_RSA_PKCS1_SHA512  uint16 = 0x0601
	SIG_SCHEME_ECDSA_P521_SHA512 uint16 = 0x0603
	SIG_SCHEME_ED25519           uint16 = 0x0807
)
