// Package prng implements spec.md §9's process-wide PRNG: a single
// Keccak-based stream generator seeded once (the `i` command's raw-byte
// payload) and fetched from thereafter by key generation and nonce
// sampling.
//
// Grounded on original_source/pyecsca/codegen/prng/prng.c, which wraps a
// Keccak duplex-sponge PRG (feed to seed, forget to ratchet the
// absorbed state out of recoverability, fetch to squeeze output bytes).
// golang.org/x/crypto/sha3's SHAKE256 is this module's closest ecosystem
// equivalent: a Keccak-family extendable-output function supporting the
// same write-then-read duplex usage, already present in the pack via
// giuliop-AlgoPlonk's gnark-crypto dependency chain. SHAKE has no
// explicit "forget" primitive; Reset following every Seed call is the
// closest approximation available without hand-rolling the sponge
// construction, documented here rather than silently treated as
// equivalent.
package prng

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

// PRNG is a seed-then-fetch stream generator, process-wide-singleton by
// convention (see the package-level Seed/Fetch wrappers below), guarded
// by a mutex the way Bandersnatch guards its single error-handler slot.
type PRNG struct {
	mu    sync.Mutex
	shake sha3.ShakeHash
}

// New constructs an unseeded PRNG. Fetch before the first Seed draws from
// SHAKE256's fixed initial state, which is deterministic and therefore
// unsuitable for anything security-sensitive — callers must Seed first.
func New() *PRNG {
	return &PRNG{shake: sha3.NewShake256()}
}

// Seed absorbs fresh entropy, per prng_seed's feed-then-forget: Write
// appends seed into the sponge's absorbed state, then Reset ratchets a
// squeeze-ready digest of it into a fresh duplex instance so later Fetch
// calls cannot be run backward to recover seed.
func (p *PRNG) Seed(seed []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shake.Write(seed)
	digest := make([]byte, 64)
	p.shake.Read(digest)
	p.shake.Reset()
	p.shake.Write(digest)
}

// Fetch squeezes n bytes of output, per prng_get/KeccakWidth200_SpongePRG_Fetch.
func (p *PRNG) Fetch(n int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, n)
	if _, err := p.shake.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Read implements io.Reader so a *PRNG can be installed directly via
// bigint.SetRandomSource.
func (p *PRNG) Read(out []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shake.Read(out)
}

var global = New()

// Seed absorbs entropy into the process-wide PRNG, per the `i` command.
func Seed(seed []byte) { global.Seed(seed) }

// Fetch draws n bytes from the process-wide PRNG.
func Fetch(n int) ([]byte, error) { return global.Fetch(n) }

// Global returns the process-wide PRNG instance itself, so
// bigint.SetRandomSource(prng.Global()) can install it as the random
// source key generation and nonce sampling draw from.
func Global() *PRNG { return global }
