package go_certverify

import (
	"errors"
	"fmt"
)

// CertificateVerify Message Processing
//
// The message proves the peer holds the private key matching the
// certificate it presented, by signing a snapshot of the handshake
// transcript hash. Body layout (big-endian):
//
//	version <  TLS12: signature_length:u16 | signature
//	version >= TLS12: scheme_id:u16 | signature_length:u16 | signature
//
// Receive is always synchronous. Send may suspend when the key handle
// defers the signing operation; the message is then finished by
// ResumeSigning. Either direction, on success, minimizes the transcript
// hash store down to the algorithms still needed for the rest of the
// handshake.

// RecvCertificateVerify processes an incoming CertificateVerify body.
//
// The transcript digest is computed on a copy of the running hash state:
// finalizing the digest consumes the copy, while the store's own state
// keeps running for later handshake messages.
func (c *Connection) RecvCertificateVerify(body []byte) error {
	if c.hashes == nil {
		return fmt.Errorf("connection has no transcript hashes: %w", ErrProtocol)
	}
	in := NewStream(body)

	var scheme SignatureScheme
	var err error
	if c.version < TLS12 {
		scheme, err = c.chooseDefaultSigScheme(c.role.peer())
	} else {
		scheme, err = c.validateNegotiatedSigScheme(in)
	}
	if err != nil {
		return err
	}

	signature, err := in.ReadSignature()
	if err != nil {
		return err
	}

	workspace, err := c.hashes.Snapshot(scheme.HashAlg)
	if err != nil {
		return err
	}
	digest := workspace.Sum(nil)

	if err := verifyDigestSignature(c.peerPublicKey, scheme, digest, signature); err != nil {
		return err
	}

	Debug("certificate verify received, scheme 0x%04x", scheme.IANAValue)
	c.updateRequiredHandshakeHashes()
	return nil
}

// SendCertificateVerify produces the outgoing CertificateVerify body
// into the connection's staging buffer.
//
// On TLS 1.2+ the scheme identifier is staged before signing: it does
// not depend on the signing result, so a deferred signer does not hold
// it up. If the key handle defers, SendSuspended is returned, the
// pending operation is recorded on the connection, and the message is
// finished later by ResumeSigning; nothing lives on the call stack
// across the suspension.
func (c *Connection) SendCertificateVerify() (SendStatus, error) {
	if c.hashes == nil {
		return 0, fmt.Errorf("connection has no transcript hashes: %w", ErrProtocol)
	}
	if c.sendState != sendStateStart {
		return 0, fmt.Errorf("certificate verify send already started: %w", ErrInvalidResume)
	}
	c.sendMark = c.out.Len()

	var scheme SignatureScheme
	var err error
	if c.version < TLS12 {
		scheme, err = c.chooseDefaultSigScheme(c.role)
	} else {
		scheme, err = c.selectSigScheme()
	}
	if err != nil {
		return 0, err
	}
	c.sendState = sendStateSchemeResolved

	if c.version >= TLS12 {
		if err := c.out.WriteUint16(scheme.IANAValue); err != nil {
			c.discardPartialOutput()
			return 0, err
		}
	}

	workspace, err := c.hashes.Snapshot(scheme.HashAlg)
	if err != nil {
		c.discardPartialOutput()
		return 0, err
	}
	digest := workspace.Sum(nil)
	c.sendState = sendStateHashSnapshotted

	if c.localKey == nil {
		c.discardPartialOutput()
		return 0, fmt.Errorf("no local key configured: %w", ErrProtocol)
	}
	c.sendState = sendStateSigningRequested
	signature, err := c.localKey.SignDigest(scheme, digest)
	if errors.Is(err, ErrOperationPending) {
		c.pendingOp = &AsyncKeyOperation{
			conn:       c,
			scheme:     scheme,
			digest:     digest,
			generation: c.generation,
		}
		c.sendState = sendStateSuspended
		Debug("certificate verify signing deferred, scheme 0x%04x", scheme.IANAValue)
		return SendSuspended, nil
	}
	if err != nil {
		c.discardPartialOutput()
		return 0, fmt.Errorf("signing request failed: %w", err)
	}

	if err := c.certVerifySendComplete(signature); err != nil {
		return 0, err
	}
	return SendComplete, nil
}

// ResumeSigning delivers the signature for a suspended send and finishes
// the message. Callable exactly once per suspension; invoking it on a
// connection that is not suspended, or a second time, is a programming
// fault reported as ErrInvalidResume.
func (c *Connection) ResumeSigning(signature []byte) error {
	if c.sendState != sendStateSuspended || c.pendingOp == nil {
		return fmt.Errorf("connection is not suspended: %w", ErrInvalidResume)
	}
	c.pendingOp = nil
	return c.certVerifySendComplete(signature)
}

// certVerifySendComplete writes the signature length and bytes, then
// minimizes the transcript hash store. Runs synchronously in immediate
// mode and as the resume step in deferred mode.
func (c *Connection) certVerifySendComplete(signature []byte) error {
	if err := c.out.WriteSignature(signature); err != nil {
		c.discardPartialOutput()
		return err
	}
	c.sendState = sendStateCompleted

	Debug("certificate verify sent, %d signature bytes", len(signature))
	c.updateRequiredHandshakeHashes()
	return nil
}
