package go_certverify

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// Handshake Message Framing
//
// Every handshake message is framed as msg_type:u8 | length:u24 | body.
// The CertificateVerify processor itself works on bodies; these helpers
// let the driver (and tests) carry complete framed messages.

// FrameHandshakeMessage wraps a message body in the handshake header.
func FrameHandshakeMessage(msgType uint8, body []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(msgType)
	b.AddUint24LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(body)
	})
	framed, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to frame handshake message: %w", err)
	}
	return framed, nil
}

// ParseHandshakeMessage splits a framed handshake message into its type
// and body. Trailing bytes beyond the declared length are rejected: a
// handshake record carries exactly one framed message here.
func ParseHandshakeMessage(data []byte) (uint8, []byte, error) {
	s := cryptobyte.String(data)
	var msgType uint8
	var body cryptobyte.String
	if !s.ReadUint8(&msgType) || !s.ReadUint24LengthPrefixed(&body) {
		return 0, nil, fmt.Errorf("handshake header incomplete: %w", ErrTruncatedMessage)
	}
	if !s.Empty() {
		return 0, nil, fmt.Errorf("%d trailing bytes after handshake message: %w",
			len(s), ErrMalformedMessage)
	}
	return msgType, body, nil
}
