package go_certverify

import (
	"crypto"
	"fmt"
)

// Role identifies which side of the handshake this connection plays.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

// peer returns the opposite role.
func (r Role) peer() Role {
	if r == RoleClient {
		return RoleServer
	}
	return RoleClient
}

// SendStatus is the overall outcome reported by SendCertificateVerify.
type SendStatus int

const (
	// SendComplete means the full message has been written to the
	// outgoing buffer.
	SendComplete SendStatus = iota
	// SendSuspended means the key handle deferred the signing operation;
	// the message is finished later by ResumeSigning.
	SendSuspended
)

// sendState tracks the send-path state machine:
//
//	start -> schemeResolved -> hashSnapshotted -> signingRequested
//	      -> completed | suspended;  suspended -> completed on resume
//
// No state is ever revisited; completed and an error exit are terminal.
type sendState int

const (
	sendStateStart sendState = iota
	sendStateSchemeResolved
	sendStateHashSnapshotted
	sendStateSigningRequested
	sendStateSuspended
	sendStateCompleted
)

// ConnectionConfig carries the negotiated handshake parameters a
// Connection needs for the CertificateVerify exchange. Everything here
// is decided earlier in the handshake by the driver.
type ConnectionConfig struct {
	// Version is the negotiated protocol version (TLS10..TLS13).
	Version uint16
	// Role is the local side of the handshake.
	Role Role
	// PRFHashAlgorithm is the hash of the negotiated cipher suite. It is
	// the one algorithm still required after CertificateVerify, for the
	// Finished message. Defaults to HASH_SHA256.
	PRFHashAlgorithm HashAlgorithm
	// OfferedSchemes is the set of signature schemes advertised earlier
	// in the handshake. Only used for TLS 1.2 and later.
	OfferedSchemes []SignatureScheme
	// PeerPublicKey is the public key extracted from the peer's
	// certificate, used on the receive path.
	PeerPublicKey crypto.PublicKey
	// LocalKey is the private key handle used on the send path.
	LocalKey KeyHandle
}

// Connection holds the per-connection state this processor reads and
// mutates. One handshake proceeds strictly sequentially: the processor
// assumes exclusive access to the transcript store and the chosen-scheme
// field for the duration of each call. There is no global mutable state,
// so independent connections need no cross-connection locking.
type Connection struct {
	version        uint16
	role           Role
	prfHashAlg     HashAlgorithm
	hashes         *TranscriptHashStore
	offeredSchemes []SignatureScheme
	peerPublicKey  crypto.PublicKey
	localKey       KeyHandle

	// chosenSigScheme is resolved once per handshake for this message
	// and stays stable across a suspend/resume cycle.
	chosenSigScheme *SignatureScheme

	// out accumulates the staged CertificateVerify body across a
	// possible suspension. sendMark records the buffer length at entry
	// so an error can truncate back to it, leaving no partial output.
	out       *Stream
	sendMark  int
	sendState sendState

	// pendingOp is the in-flight deferred signing request, if any.
	// generation guards against a stale completion firing after
	// Teardown has invalidated the suspension.
	pendingOp  *AsyncKeyOperation
	generation uint32
}

// NewConnection creates a connection ready for the CertificateVerify
// exchange. The transcript store is started for every hash algorithm the
// exchange can touch: the cipher suite's PRF hash, the hash of each
// offered scheme, and SHA-1 when a pre-TLS1.2 default scheme may apply.
func NewConnection(cfg ConnectionConfig) (*Connection, error) {
	if cfg.Version < TLS10 || cfg.Version > TLS13 {
		return nil, fmt.Errorf("unsupported protocol version 0x%04x: %w", cfg.Version, ErrProtocol)
	}
	prf := cfg.PRFHashAlgorithm
	if prf == HASH_NONE {
		prf = HASH_SHA256
	}

	algs := []HashAlgorithm{prf}
	for _, scheme := range cfg.OfferedSchemes {
		algs = append(algs, scheme.HashAlg)
	}
	if cfg.Version < TLS12 {
		algs = append(algs, HASH_SHA1)
	}
	hashes, err := NewTranscriptHashStore(algs...)
	if err != nil {
		return nil, err
	}

	return &Connection{
		version:        cfg.Version,
		role:           cfg.Role,
		prfHashAlg:     prf,
		hashes:         hashes,
		offeredSchemes: cfg.OfferedSchemes,
		peerPublicKey:  cfg.PeerPublicKey,
		localKey:       cfg.LocalKey,
		out:            NewStream(make([]byte, 0, 512)),
	}, nil
}

// UpdateTranscript feeds handshake bytes into every running transcript
// hash. Called by the handshake driver for each handshake message
// exchanged before CertificateVerify.
func (c *Connection) UpdateTranscript(p []byte) {
	c.hashes.Update(p)
}

// Hashes exposes the transcript hash store.
func (c *Connection) Hashes() *TranscriptHashStore {
	return c.hashes
}

// ChosenScheme returns the signature scheme resolved for this
// connection's CertificateVerify message, or nil before resolution.
func (c *Connection) ChosenScheme() *SignatureScheme {
	return c.chosenSigScheme
}

// SetChosenScheme records a scheme negotiated earlier in the handshake
// (e.g. from a CertificateRequest), used by the send path on TLS 1.2+.
func (c *Connection) SetChosenScheme(scheme SignatureScheme) {
	s := scheme
	c.chosenSigScheme = &s
}

// OutgoingBytes returns the staged CertificateVerify body. Only complete
// after SendCertificateVerify reports SendComplete (directly or through
// ResumeSigning).
func (c *Connection) OutgoingBytes() []byte {
	return c.out.Bytes()
}

// PendingOperation returns the in-flight deferred signing request, or
// nil when the connection is not suspended. The external signer reads
// the digest and scheme from it and later calls Complete.
func (c *Connection) PendingOperation() *AsyncKeyOperation {
	return c.pendingOp
}

// Teardown cancels any pending deferred signing operation. A completion
// that fires after teardown is a no-op; the generation bump is what the
// stale completion check observes.
func (c *Connection) Teardown() {
	c.generation++
	if c.pendingOp != nil {
		Debug("discarding pending signing operation on teardown")
		c.pendingOp = nil
	}
	c.sendState = sendStateCompleted
}

// discardPartialOutput truncates the outgoing buffer back to the length
// recorded at send entry so a failed exchange leaves nothing on the wire.
func (c *Connection) discardPartialOutput() {
	c.out.Truncate(c.sendMark)
}
