package go_certverify

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Stream provides CertificateVerify-specific message serialization.
// It wraps bytes.Buffer and adds methods for reading/writing the
// message's binary fields.
//
// The Stream type focuses on the CertificateVerify body layout:
//   - Big-endian uint16 fields (scheme identifier, signature length)
//   - Length-prefixed signature payloads with an explicit upper bound
//
// The outer handshake header (msg_type + uint24 length) is handled by
// handshake_frame.go, not here.
type Stream struct {
	*bytes.Buffer
}

// NewStream creates a new Stream from a byte slice.
// The Stream wraps a bytes.Buffer initialized with the provided data.
func NewStream(buf []byte) *Stream {
	return &Stream{bytes.NewBuffer(buf)}
}

// ReadUint16 reads a big-endian uint16 from the stream.
// This is used for the signature scheme identifier and length prefixes.
func (s *Stream) ReadUint16() (uint16, error) {
	bts := make([]byte, 2)
	if _, err := io.ReadFull(s, bts); err != nil {
		return 0, fmt.Errorf("reading uint16: %w", ErrTruncatedMessage)
	}
	return binary.BigEndian.Uint16(bts), nil
}

// WriteUint16 writes a big-endian uint16 to the stream.
func (s *Stream) WriteUint16(i uint16) error {
	bts := make([]byte, 2)
	binary.BigEndian.PutUint16(bts, i)
	_, err := s.Write(bts)
	return err
}

// ReadSignature reads a length-prefixed signature payload.
// Format: [length:uint16][signature data]
//
// A zero length or a length above MAX_SIGNATURE_SIZE is rejected as
// malformed before any payload allocation; a payload shorter than the
// declared length is reported as truncated.
func (s *Stream) ReadSignature() ([]byte, error) {
	length, err := s.ReadUint16()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, fmt.Errorf("zero-length signature: %w", ErrMalformedMessage)
	}
	if int(length) > MAX_SIGNATURE_SIZE {
		return nil, fmt.Errorf("declared signature length %d exceeds %d: %w",
			length, MAX_SIGNATURE_SIZE, ErrMalformedMessage)
	}
	signature := make([]byte, length)
	if _, err := io.ReadFull(s, signature); err != nil {
		return nil, fmt.Errorf("signature payload short of declared %d bytes: %w",
			length, ErrTruncatedMessage)
	}
	return signature, nil
}

// WriteSignature writes a length-prefixed signature payload.
// The length field always equals exactly the byte count of the signature
// produced by signing; no padding and no truncation.
func (s *Stream) WriteSignature(signature []byte) error {
	if len(signature) == 0 {
		return fmt.Errorf("refusing to write empty signature: %w", ErrMalformedMessage)
	}
	if len(signature) > MAX_SIGNATURE_SIZE {
		return fmt.Errorf("signature of %d bytes exceeds %d: %w",
			len(signature), MAX_SIGNATURE_SIZE, ErrMalformedMessage)
	}
	if err := s.WriteUint16(uint16(len(signature))); err != nil {
		return err
	}
	_, err := s.Write(signature)
	return err
}
