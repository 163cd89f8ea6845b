package go_certverify

import (
	"bytes"
	"errors"
	"testing"
)

// TestHandshakeFrameRoundTrip verifies the msg_type + uint24 length
// header round-trips a CertificateVerify body.
func TestHandshakeFrameRoundTrip(t *testing.T) {
	body := []byte{0x04, 0x03, 0x00, 0x02, 0xaa, 0xbb}
	framed, err := FrameHandshakeMessage(HANDSHAKE_TYPE_CERTIFICATE_VERIFY, body)
	if err != nil {
		t.Fatalf("framing failed: %v", err)
	}
	if len(framed) != HANDSHAKE_HEADER_SIZE+len(body) {
		t.Fatalf("framed length %d, want %d", len(framed), HANDSHAKE_HEADER_SIZE+len(body))
	}

	msgType, parsed, err := ParseHandshakeMessage(framed)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	if msgType != HANDSHAKE_TYPE_CERTIFICATE_VERIFY {
		t.Fatalf("got msg_type %d, want %d", msgType, HANDSHAKE_TYPE_CERTIFICATE_VERIFY)
	}
	if !bytes.Equal(parsed, body) {
		t.Fatal("body changed across framing round trip")
	}
}

// TestParseHandshakeMessageRejectsBadFrames verifies truncated headers
// and trailing garbage are both rejected.
func TestParseHandshakeMessageRejectsBadFrames(t *testing.T) {
	if _, _, err := ParseHandshakeMessage([]byte{15, 0x00}); !errors.Is(err, ErrTruncatedMessage) {
		t.Fatalf("truncated header: got %v, want ErrTruncatedMessage", err)
	}

	framed, err := FrameHandshakeMessage(HANDSHAKE_TYPE_CERTIFICATE_VERIFY, []byte{0x01})
	if err != nil {
		t.Fatalf("framing failed: %v", err)
	}
	framed = append(framed, 0xff)
	if _, _, err := ParseHandshakeMessage(framed); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("trailing bytes: got %v, want ErrMalformedMessage", err)
	}
}
