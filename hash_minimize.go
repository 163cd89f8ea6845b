package go_certverify

// Transcript Hash Minimization
//
// Once the CertificateVerify exchange has completed, no remaining
// handshake message needs any transcript hash other than the negotiated
// cipher suite's PRF hash (the Finished verify data is computed over
// it). Discarding the other running states bounds memory for the rest of
// the handshake.

// remainingHashRequirements returns the set of hash algorithms still
// required by handshake messages after CertificateVerify.
func (c *Connection) remainingHashRequirements() map[HashAlgorithm]bool {
	return map[HashAlgorithm]bool{c.prfHashAlg: true}
}

// updateRequiredHandshakeHashes prunes the transcript hash store down to
// the remaining-requirement set. Side-effect only and idempotent:
// pruning twice yields the same retained set, and the absence of a state
// that is genuinely no longer needed is not an error.
func (c *Connection) updateRequiredHandshakeHashes() {
	c.hashes.Retain(c.remainingHashRequirements())
}
