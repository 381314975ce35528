package bigint

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/J08nY/ecsca-engine/bserrors"
)

// randSourceMutex-guarded process-wide random source, following the same
// single-slot-behind-a-mutex pattern Bandersnatch uses for its NaP error
// handler (bandersnatch/error_handler.go's current_error_handler /
// error_handler_mutex). Installed once during engine init (spec.md §5).
var (
	randSource      io.Reader = rand.Reader
	randSourceMutex sync.Mutex
)

// SetRandomSource installs the process-wide random byte source used by
// RandModSample and RandModReduce, returning the previously installed one.
// Call once during engine initialization; the PRNG package wires this to
// the Keccak-based stream PRNG once seeded.
func SetRandomSource(r io.Reader) (previous io.Reader) {
	randSourceMutex.Lock()
	defer randSourceMutex.Unlock()
	previous = randSource
	randSource = r
	return
}

func currentRandomSource() io.Reader {
	randSourceMutex.Lock()
	defer randSourceMutex.Unlock()
	return randSource
}

// digitBits matches the original's MP_DIGIT_BIT-sized draws; we draw whole
// bytes instead of machine digits since the random source is byte-oriented.
const digitBits = 8

// RandModSample draws a uniformly random value in [0, mod) by the
// sample-and-reject method of bn_rand_mod_sample: draw ceil(bitlen(mod)/W)+1
// digits, mask to bitlen(mod)+1 bits, and repeat until the result is below
// mod. This has a different (better) bias/side-channel profile than
// RandModReduce but a data-dependent number of iterations.
func RandModSample(mod *Int) (*Int, error) {
	if mod.IsZero() {
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "cannot sample modulo zero")
	}
	modLen := mod.BitLen()
	nbytes := (modLen+digitBits-1)/digitBits + 1
	maskBits := uint(modLen + 1)
	const maxIter = 10000
	for iter := 0; iter < maxIter; iter++ {
		buf := make([]byte, nbytes)
		if _, err := io.ReadFull(currentRandomSource(), buf); err != nil {
			return nil, bserrors.Wrapf(bserrors.ErrOOM, "random source read failed: %v", err)
		}
		candidate := FromBytes(buf)
		candidate = maskToBits(candidate, maskBits)
		if candidate.Cmp(mod) < 0 {
			return candidate, nil
		}
	}
	return nil, bserrors.Wrapf(bserrors.ErrMaxIterations, "sample-and-reject did not converge after %d draws", maxIter)
}

// RandModReduce draws ceil(bitlen(mod)/W)+2 digits and reduces modulo mod,
// per bn_rand_mod_reduce. Always terminates in one draw, at the cost of a
// small modular bias compared to RandModSample.
func RandModReduce(mod *Int) (*Int, error) {
	if mod.IsZero() {
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "cannot reduce modulo zero")
	}
	modLen := mod.BitLen()
	nbytes := (modLen+digitBits-1)/digitBits + 2
	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(currentRandomSource(), buf); err != nil {
		return nil, bserrors.Wrapf(bserrors.ErrOOM, "random source read failed: %v", err)
	}
	return FromBytes(buf).Mod(mod), nil
}

func maskToBits(x *Int, bits uint) *Int {
	mask := FromUint64(1).Lsh(bits)
	mask = mask.Sub(FromUint64(1))
	return x.And(mask)
}
