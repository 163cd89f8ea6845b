package go_certverify

import (
	"fmt"
)

// Signature Scheme Negotiation
//
// Before TLS 1.2 the CertificateVerify message carries no scheme
// identifier: both sides independently derive the same default scheme
// from the signer's key algorithm. From TLS 1.2 on, the signer transmits
// the 16-bit IANA identifier and the receiver validates it against the
// set offered earlier in the handshake, so a peer can never pick an
// algorithm that was not negotiated.
//
// Whichever path runs, the resolved scheme is recorded on the connection
// for the rest of the handshake (and across a suspend/resume cycle).

// defaultSigScheme returns the pre-TLS1.2 default scheme for a signature
// algorithm. TLS 1.0/1.1 define fixed digest constructions per key type;
// there is no Ed25519 default before TLS 1.2.
func defaultSigScheme(alg SignatureAlgorithm) (SignatureScheme, error) {
	switch alg {
	case SIG_RSA_PKCS1:
		return RSA_PKCS1_SHA1, nil
	case SIG_ECDSA:
		return ECDSA_SHA1, nil
	default:
		return SignatureScheme{}, fmt.Errorf("no default signature scheme for algorithm %d: %w", alg, ErrProtocol)
	}
}

// chooseDefaultSigScheme computes the default scheme for the side that
// signs this message (signerRole), derived from that side's key
// material. Both peers run this with the same inputs and must arrive at
// the same scheme. The result is recorded on the connection.
func (c *Connection) chooseDefaultSigScheme(signerRole Role) (SignatureScheme, error) {
	var alg SignatureAlgorithm
	var err error
	if signerRole == c.role {
		if c.localKey == nil {
			return SignatureScheme{}, fmt.Errorf("no local key configured: %w", ErrProtocol)
		}
		alg = c.localKey.Algorithm()
	} else {
		if alg, err = publicKeyAlgorithm(c.peerPublicKey); err != nil {
			return SignatureScheme{}, err
		}
	}

	scheme, err := defaultSigScheme(alg)
	if err != nil {
		return SignatureScheme{}, err
	}
	c.SetChosenScheme(scheme)
	return scheme, nil
}

// validateNegotiatedSigScheme reads the scheme identifier the peer
// selected and checks it against the offered set. An identifier outside
// that set is rejected with ErrSchemeNotOffered; accepting it would let
// the peer inject an algorithm that was never advertised. The validated
// scheme is recorded on the connection.
func (c *Connection) validateNegotiatedSigScheme(in *Stream) (SignatureScheme, error) {
	id, err := in.ReadUint16()
	if err != nil {
		return SignatureScheme{}, err
	}
	for _, scheme := range c.offeredSchemes {
		if scheme.IANAValue == id {
			c.SetChosenScheme(scheme)
			return scheme, nil
		}
	}
	return SignatureScheme{}, fmt.Errorf("peer selected scheme 0x%04x: %w", id, ErrSchemeNotOffered)
}

// selectSigScheme resolves the scheme for the send path on TLS 1.2+.
// A scheme already negotiated earlier in the handshake (e.g. from the
// CertificateRequest) wins; otherwise the first offered scheme matching
// the local key's algorithm is used.
func (c *Connection) selectSigScheme() (SignatureScheme, error) {
	if c.chosenSigScheme != nil {
		return *c.chosenSigScheme, nil
	}
	if c.localKey == nil {
		return SignatureScheme{}, fmt.Errorf("no local key configured: %w", ErrProtocol)
	}
	for _, scheme := range c.offeredSchemes {
		if scheme.SigAlg == c.localKey.Algorithm() {
			c.SetChosenScheme(scheme)
			return scheme, nil
		}
	}
	return SignatureScheme{}, fmt.Errorf("no offered scheme matches local key algorithm %d: %w",
		c.localKey.Algorithm(), ErrProtocol)
}
