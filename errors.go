package go_certverify

import (
	"errors"
)

// Standard CertificateVerify Error Types
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked using errors.Is() and errors.As(). All errors include context
// about the operation that failed and the underlying cause.
//
// Design rationale:
// - Use sentinel errors for the protocol failure classes the handshake
//   driver must distinguish to pick an alert
// - All errors are safe for error wrapping with fmt.Errorf("%w", err)
// - Every error below is terminal for the handshake; none are recovered
//   inside this package

var (
	// ErrProtocol indicates the connection state does not admit a
	// CertificateVerify exchange, e.g. no default signature scheme is
	// determinable for a pre-TLS1.2 connection.
	ErrProtocol = errors.New("certverify: protocol state does not permit certificate verify")

	// ErrSchemeNotOffered indicates the peer selected a signature scheme
	// that was not in the set offered earlier in the handshake. Accepting
	// it would let a peer downgrade to an algorithm that was never
	// negotiated, so the handshake is rejected outright.
	ErrSchemeNotOffered = errors.New("certverify: signature scheme was not offered")

	// ErrTruncatedMessage indicates the message body ended before the
	// number of bytes its own length fields declared.
	ErrTruncatedMessage = errors.New("certverify: truncated message")

	// ErrMalformedMessage indicates a structurally invalid message, e.g.
	// a zero-length signature or a declared signature length above
	// MAX_SIGNATURE_SIZE.
	ErrMalformedMessage = errors.New("certverify: malformed message")

	// ErrHashUnavailable indicates the transcript hash state required by
	// the chosen signature scheme was never started for this connection
	// or has already been pruned. This is an internal invariant
	// violation, not a peer-triggerable condition.
	ErrHashUnavailable = errors.New("certverify: transcript hash algorithm unavailable")

	// ErrSignatureVerification indicates the peer's signature did not
	// verify against the transcript digest. Verification is
	// deterministic, so this is never retried.
	ErrSignatureVerification = errors.New("certverify: signature verification failed")

	// ErrInvalidResume indicates ResumeSigning was invoked on a
	// connection that is not suspended, or invoked a second time for the
	// same suspension. This is a programming fault in the caller, not a
	// protocol error.
	ErrInvalidResume = errors.New("certverify: invalid resume of signing operation")

	// ErrKeyOperation indicates the underlying sign or verify capability
	// itself failed, e.g. an external signer refused the request.
	ErrKeyOperation = errors.New("certverify: key operation failed")

	// ErrOperationPending is returned by a KeyHandle whose signing is
	// performed out of band. It is a control-flow sentinel, not a
	// failure: the send path reacts by suspending until ResumeSigning.
	ErrOperationPending = errors.New("certverify: key operation pending")
)
