// Package hashselect implements spec.md §9's hash-function configuration
// knob: Hash ∈ {none, SHA-1, SHA-224/256/384/512}, exposed as a
// hash.Hash factory for ecdsa and ecdh to consume.
//
// This is explicitly an out-of-scope collaborator per spec.md §1 (the
// engine selects a hash, it does not implement one), so the trivial
// stdlib crypto/sha1, crypto/sha256, crypto/sha512 selector is the
// appropriate implementation — no pack example rolls its own SHA-2
// family, and original_source/pyecsca/codegen/hash/sha1.c / sha2.c are
// precisely the out-of-scope hash implementation spec.md tells us not to
// reproduce.
package hashselect

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/J08nY/ecsca-engine/bserrors"
)

// Algorithm names a selectable hash function.
type Algorithm int

const (
	None Algorithm = iota
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

// Factory is the func() hash.Hash constructor a given Algorithm resolves
// to, matching crypto/sha256.New's own shape so callers can call it
// repeatedly for independent hash.Hash instances.
type Factory func() hash.Hash

// New resolves an Algorithm to its Factory, or ErrInvalidInput for an
// unrecognised value.
func New(algorithm Algorithm) (Factory, error) {
	switch algorithm {
	case None:
		return func() hash.Hash { return &noopHash{} }, nil
	case SHA1:
		return sha1.New, nil
	case SHA224:
		return sha256.New224, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "unrecognised hash algorithm %d", algorithm)
	}
}

// noopHash implements hash.Hash as the identity function on whatever is
// written to it, backing Algorithm None: spec.md's ECDSA/ECDH equations
// both require *some* H(m), and a configuration that disables hashing
// should pass the message through unchanged rather than fail signing.
type noopHash struct{ buf []byte }

func (n *noopHash) Write(p []byte) (int, error) { n.buf = append(n.buf, p...); return len(p), nil }
func (n *noopHash) Sum(b []byte) []byte         { return append(b, n.buf...) }
func (n *noopHash) Reset()                      { n.buf = nil }
func (n *noopHash) Size() int                   { return len(n.buf) }
func (n *noopHash) BlockSize() int              { return 1 }
