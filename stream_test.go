package go_certverify

import (
	"bytes"
	"errors"
	"testing"
)

// TestStreamUint16RoundTrip verifies big-endian uint16 encoding through
// the stream.
func TestStreamUint16RoundTrip(t *testing.T) {
	s := NewStream(make([]byte, 0))
	if err := s.WriteUint16(0x0403); err != nil {
		t.Fatalf("WriteUint16 failed: %v", err)
	}
	if got := s.Bytes(); !bytes.Equal(got, []byte{0x04, 0x03}) {
		t.Fatalf("unexpected encoding: %x", got)
	}
	v, err := s.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0403 {
		t.Fatalf("got 0x%04x, want 0x0403", v)
	}
}

// TestStreamUint16Truncated verifies a short buffer is reported as a
// truncated message.
func TestStreamUint16Truncated(t *testing.T) {
	s := NewStream([]byte{0x01})
	if _, err := s.ReadUint16(); !errors.Is(err, ErrTruncatedMessage) {
		t.Fatalf("got %v, want ErrTruncatedMessage", err)
	}
}

// TestSignatureRoundTrip verifies the length-prefixed signature layout.
func TestSignatureRoundTrip(t *testing.T) {
	signature := bytes.Repeat([]byte{0xab}, 64)
	s := NewStream(make([]byte, 0))
	if err := s.WriteSignature(signature); err != nil {
		t.Fatalf("WriteSignature failed: %v", err)
	}
	if s.Len() != 2+len(signature) {
		t.Fatalf("wrote %d bytes, want %d", s.Len(), 2+len(signature))
	}
	got, err := s.ReadSignature()
	if err != nil {
		t.Fatalf("ReadSignature failed: %v", err)
	}
	if !bytes.Equal(got, signature) {
		t.Fatal("signature bytes changed across round trip")
	}
}

// TestReadSignatureRejectsBadLengths verifies zero, oversized and
// truncated signature payloads are each rejected with the right error.
func TestReadSignatureRejectsBadLengths(t *testing.T) {
	tests := []struct {
		name string
		body func() []byte
		want error
	}{
		{
			name: "zero length",
			body: func() []byte { return []byte{0x00, 0x00} },
			want: ErrMalformedMessage,
		},
		{
			name: "length above bound",
			body: func() []byte {
				s := NewStream(make([]byte, 0))
				s.WriteUint16(MAX_SIGNATURE_SIZE + 1)
				return s.Bytes()
			},
			want: ErrMalformedMessage,
		},
		{
			name: "payload shorter than declared",
			body: func() []byte {
				s := NewStream(make([]byte, 0))
				s.WriteUint16(64)
				s.Write(make([]byte, 10))
				return s.Bytes()
			},
			want: ErrTruncatedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStream(tt.body()).ReadSignature()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

// TestWriteSignatureRejectsEmpty verifies the send side never emits a
// zero-length signature field.
func TestWriteSignatureRejectsEmpty(t *testing.T) {
	s := NewStream(make([]byte, 0))
	if err := s.WriteSignature(nil); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("got %v, want ErrMalformedMessage", err)
	}
	if s.Len() != 0 {
		t.Fatalf("rejected write left %d bytes in the stream", s.Len())
	}
}
