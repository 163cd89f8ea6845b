package go_certverify

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding"
	"fmt"
	"hash"
)

// TranscriptHashStore holds one running hash state per hash algorithm in
// use for a connection. Each running state reflects exactly the handshake
// bytes fed through Update so far; nothing outside the handshake driver
// may advance it.
//
// Snapshot returns a deep, independent copy of one state. The copy is
// what gets finalized by a sign or verify step, while the store's own
// state keeps running undisturbed for later handshake messages such as
// Finished.
type TranscriptHashStore struct {
	states map[HashAlgorithm]hash.Hash
}

// NewTranscriptHashStore creates a store with a fresh running state for
// each of the given algorithms. Duplicate algorithms are collapsed.
func NewTranscriptHashStore(algs ...HashAlgorithm) (*TranscriptHashStore, error) {
	store := &TranscriptHashStore{states: make(map[HashAlgorithm]hash.Hash, len(algs))}
	for _, alg := range algs {
		if err := store.Start(alg); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// newHashState constructs a fresh running state for an algorithm.
func newHashState(alg HashAlgorithm) (hash.Hash, error) {
	switch alg {
	case HASH_SHA1:
		return sha1.New(), nil
	case HASH_SHA256:
		return sha256.New(), nil
	case HASH_SHA384:
		return sha512.New384(), nil
	case HASH_SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("cannot start hash algorithm %d: %w", alg, ErrHashUnavailable)
	}
}

// Start begins tracking an algorithm. Starting an algorithm that is
// already running is a no-op so that the existing transcript state is
// never reset mid-handshake.
func (s *TranscriptHashStore) Start(alg HashAlgorithm) error {
	if _, ok := s.states[alg]; ok {
		return nil
	}
	state, err := newHashState(alg)
	if err != nil {
		return err
	}
	s.states[alg] = state
	return nil
}

// Has reports whether a running state exists for the algorithm.
func (s *TranscriptHashStore) Has(alg HashAlgorithm) bool {
	_, ok := s.states[alg]
	return ok
}

// Update feeds handshake bytes into every running state.
func (s *TranscriptHashStore) Update(p []byte) {
	for _, state := range s.states {
		// hash.Hash.Write never returns an error
		state.Write(p)
	}
}

// Snapshot returns a deep copy of the running state for the algorithm.
//
// The copy is produced by round-tripping the state through its binary
// marshaling, so finalizing or otherwise consuming the returned hash has
// no observable effect on the store's running state. All stdlib SHA
// hashes implement encoding.BinaryMarshaler/BinaryUnmarshaler.
func (s *TranscriptHashStore) Snapshot(alg HashAlgorithm) (hash.Hash, error) {
	src, ok := s.states[alg]
	if !ok {
		return nil, fmt.Errorf("no running state for hash algorithm %d: %w", alg, ErrHashUnavailable)
	}
	marshaler, ok := src.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("hash algorithm %d state is not copyable: %w", alg, ErrHashUnavailable)
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hash state: %w", err)
	}
	dst, err := newHashState(alg)
	if err != nil {
		return nil, err
	}
	if err := dst.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("failed to restore hash state copy: %w", err)
	}
	return dst, nil
}

// Retain discards every running state whose algorithm is not in the
// required set. Idempotent: retaining the same set twice leaves the
// store unchanged. Absence of an algorithm that is no longer needed is
// not an error.
func (s *TranscriptHashStore) Retain(required map[HashAlgorithm]bool) {
	for alg := range s.states {
		if !required[alg] {
			delete(s.states, alg)
			Debug("discarded transcript hash state for algorithm %d", alg)
		}
	}
}

// Algorithms returns the set of algorithms currently running.
func (s *TranscriptHashStore) Algorithms() []HashAlgorithm {
	algs := make([]HashAlgorithm, 0, len(s.states))
	for alg := range s.states {
		algs = append(algs, alg)
	}
	return algs
}
