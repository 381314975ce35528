// Package engine owns the process-wide mutable state spec.md §5 and §9
// describe: the current PRNG, private key, public key, and configured
// curve, each a singleton with lifecycle init -> commands -> deinit, and
// the configuration knobs (curve model, coordinate system, scalar-mult
// algorithm, reduction backend, hash, random-scalar method) fixed once at
// startup and never changed mid-session.
//
// Grounded on Bandersnatch's bandersnatch/error_handler.go, which guards
// its single current-handler slot behind a package-level sync.Mutex; this
// package generalises the same single-slot-behind-a-mutex shape to the
// four singletons spec.md §5 names, rather than Bandersnatch's one error
// handler.
package engine

import (
	"sync"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
	"github.com/J08nY/ecsca-engine/curve"
	"github.com/J08nY/ecsca-engine/ecdh"
	"github.com/J08nY/ecsca-engine/ecdsa"
	"github.com/J08nY/ecsca-engine/formula"
	"github.com/J08nY/ecsca-engine/hashselect"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/prng"
	"github.com/J08nY/ecsca-engine/reduction"
	"github.com/J08nY/ecsca-engine/scalarmult"
)

// RandomMethod picks between spec.md §4.1's two scalar-sampling
// strategies, a configuration knob spec.md §9 lists alongside reduction
// and mult-algorithm.
type RandomMethod int

const (
	SampleAndReject RandomMethod = iota
	Reduce
)

func (m RandomMethod) sampler() func(*bigint.Int) (*bigint.Int, error) {
	if m == Reduce {
		return bigint.RandModReduce
	}
	return bigint.RandModSample
}

// Config fixes the knobs spec.md §9 calls "recognised options": curve
// model and coordinate system (together pinning which curve-param names
// and point layout the `c` command's TLV tree is interpreted against),
// the scalar-mult algorithm (already built with its formula set), the hash
// selection, and the random-scalar method. These are chosen once at
// process start (by cmd/ecsca-engine's flags) and fixed for the session.
type Config struct {
	Model      curve.Model
	System     point.System
	Reduction  reduction.Kind
	Multiplier scalarmult.Multiplier
	Add        *formula.Working // curve's point-addition formula, for ecdsa.Verify's two-multiply-then-add
	Hash       hashselect.Algorithm
	RandomMod  RandomMethod
}

// State is the engine's process-wide mutable singleton, per spec.md §5:
// "The current private key, public key, and curve are process-wide
// singletons with lifecycle init -> commands -> deinit." Every exported
// method is safe for the single-threaded command loop to call directly;
// the mutex exists so the same guarantee holds if a future transport
// stops being strictly single-threaded, not because concurrent command
// processing is expected.
type State struct {
	mu sync.Mutex

	cfg  Config
	hash hashselect.Factory
	prng *prng.PRNG

	curve   *curve.Curve
	privKey *bigint.Int
	pubKey  *point.Point
	trigger uint32
}

var (
	singletonMu sync.Mutex
	singleton   *State
)

// Init constructs the engine singleton for cfg, installs its PRNG as
// package bigint's process-wide random source (spec.md §4.1: "the random
// source is injected as a process-wide callback, set once at
// initialisation"), and returns it. A prior singleton, if any, is
// discarded.
func Init(cfg Config) (*State, error) {
	hash, err := hashselect.New(cfg.Hash)
	if err != nil {
		return nil, err
	}
	s := &State{
		cfg:  cfg,
		hash: hash,
		prng: prng.New(),
	}

	singletonMu.Lock()
	singleton = s
	singletonMu.Unlock()

	bigint.SetRandomSource(s.prng)
	return s, nil
}

// Current returns the process-wide engine singleton, or nil if Init has
// not been called (or Deinit has run since).
func Current() *State {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	return singleton
}

// Deinit clears the process-wide singleton, per spec.md §5's
// init -> commands -> deinit lifecycle.
func Deinit() {
	singletonMu.Lock()
	singleton = nil
	singletonMu.Unlock()
}

// SeedPRNG absorbs fresh entropy into the engine's PRNG, per the `i`
// command (spec.md §6).
func (s *State) SeedPRNG(seed []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prng.Seed(seed)
}

// reservedCurveKeys names the TLV keys SetCurveParams interprets itself
// rather than forwarding to curve.Curve.SetParam, per spec.md §6's
// example curve payload: "p,a,b,n,h,gx,gy,in (neutral infinity flag, 1
// byte), iX/iY/iZ (neutral coordinates)". Keys outside this set are
// model coefficients (a,b / A,B / c,d / a,d) forwarded verbatim so the
// same decoder serves every curve model.
func reservedCurveKeys(system point.System) map[string]bool {
	reserved := map[string]bool{"p": true, "n": true, "h": true, "gx": true, "gy": true, "in": true}
	for _, v := range system.Variables {
		reserved["i"+v] = true
	}
	return reserved
}

// SetCurveParams builds a fresh curve from a decoded TLV tree (name ->
// raw big-endian value bytes), per the `c` command. Unreserved keys are
// forwarded to curve.Curve.SetParam, so the same method handles every
// curve model the engine was configured for.
func (s *State) SetCurveParams(raw map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pBytes, ok := raw["p"]
	if !ok {
		return bserrors.Wrapf(bserrors.ErrInvalidInput, "curve payload missing modulus %q", "p")
	}
	c := curve.New(s.cfg.Model, bigint.FromBytes(pBytes), s.cfg.Reduction)

	reserved := reservedCurveKeys(s.cfg.System)
	for name, data := range raw {
		if reserved[name] {
			continue
		}
		if err := c.SetParam(name, bigint.FromBytes(data)); err != nil {
			return err
		}
	}

	if nBytes, ok := raw["n"]; ok {
		c.SetOrder(bigint.FromBytes(nBytes))
	}
	if hBytes, ok := raw["h"]; ok {
		c.SetCofactor(bigint.FromBytes(hBytes))
	}
	if gx, gxOK := raw["gx"]; gxOK {
		if gy, gyOK := raw["gy"]; gyOK {
			c.SetGenerator(s.cfg.System, bigint.FromBytes(gx), bigint.FromBytes(gy))
		}
	}

	neutral := point.New(s.cfg.System)
	if inBytes, ok := raw["in"]; ok && len(inBytes) > 0 && inBytes[0] != 0 {
		neutral.Infinity = true
	}
	for _, v := range s.cfg.System.Variables {
		if data, ok := raw["i"+v]; ok {
			neutral.Coords[v] = c.Reduction().Encode(bigint.FromBytes(data))
		}
	}
	c.SetNeutral(neutral)

	s.curve = c
	return nil
}

func (s *State) requireCurve() (*curve.Curve, error) {
	if s.curve == nil {
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "no curve configured: send the `c` command first")
	}
	return s.curve, nil
}

// FieldWidths returns the byte lengths of the modulus and the group
// order, the fixed widths package command packs coordinates and scalars
// into on the wire.
func (s *State) FieldWidths() (modulusBytes, orderBytes int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.requireCurve()
	if err != nil {
		return 0, 0, err
	}
	return (c.Reduction().Modulus().BitLen() + 7) / 8, (c.Order().BitLen() + 7) / 8, nil
}

// GenerateKeypair draws a fresh private scalar and multiplies the
// generator, per the `g` command: reply carries the privkey and the
// public point's affine coordinates.
func (s *State) GenerateKeypair() (priv, x, y *bigint.Int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.requireCurve()
	if err != nil {
		return nil, nil, nil, err
	}
	d, err := s.cfg.RandomMod.sampler()(c.Order())
	if err != nil {
		return nil, nil, nil, err
	}
	pub, err := s.cfg.Multiplier.Multiply(c, d, c.Generator())
	if err != nil {
		return nil, nil, nil, err
	}
	s.privKey = d
	s.pubKey = pub
	px, py := pub.RedDecode(c).ToAffine(c)
	return d, px, py, nil
}

// SetPrivKey installs d as the current private key, per the `s` command.
func (s *State) SetPrivKey(d *bigint.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.privKey = d
}

// SetPubKey installs (x,y) as the current public key, per the `w`
// command.
func (s *State) SetPubKey(x, y *bigint.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.pointFromAffineLocked(x, y)
	if err != nil {
		return err
	}
	s.pubKey = p
	return nil
}

// PointFromAffine builds a curve point from affine (x,y) in the engine's
// configured coordinate system, for the `m` command when it is given an
// explicit point alongside the scalar. (The `e` command's peer point is
// built inside ECDH instead.)
func (s *State) PointFromAffine(x, y *bigint.Int) (*point.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointFromAffineLocked(x, y)
}

func (s *State) pointFromAffineLocked(x, y *bigint.Int) (*point.Point, error) {
	c, err := s.requireCurve()
	if err != nil {
		return nil, err
	}
	return point.FromAffine(s.cfg.System, x, y, c).RedEncode(c), nil
}

// Multiply computes scalar*p, or scalar*generator if p is nil, per the
// `m` command's "scalar-multiply generator or given point".
func (s *State) Multiply(scalar *bigint.Int, p *point.Point) (x, y *bigint.Int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.requireCurve()
	if err != nil {
		return nil, nil, err
	}
	base := p
	if base == nil {
		base = c.Generator()
	}
	result, err := s.cfg.Multiplier.Multiply(c, scalar, base)
	if err != nil {
		return nil, nil, err
	}
	rx, ry := result.RedDecode(c).ToAffine(c)
	return rx, ry, nil
}

// ECDH computes the shared secret with the given peer public point under
// the current private key, per the `e` command.
func (s *State) ECDH(peerX, peerY *bigint.Int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.requireCurve()
	if err != nil {
		return nil, err
	}
	if s.privKey == nil {
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "no private key set: send `g` or `s` first")
	}
	peer := point.FromAffine(s.cfg.System, peerX, peerY, c).RedEncode(c)
	return ecdh.SharedSecret(c, s.cfg.Multiplier, s.hash, s.privKey, peer)
}

// Sign produces an ECDSA signature over message under the current
// private key, per the `a` command.
func (s *State) Sign(message []byte) (r, sig *bigint.Int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.requireCurve()
	if err != nil {
		return nil, nil, err
	}
	if s.privKey == nil {
		return nil, nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "no private key set: send `g` or `s` first")
	}
	return ecdsa.Sign(c, s.cfg.Multiplier, s.hash, s.cfg.RandomMod.sampler(), s.privKey, message)
}

// Verify reports whether (r,s) validates against message under the
// current public key, per the `r` command.
func (s *State) Verify(message []byte, r, sig *bigint.Int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.requireCurve()
	if err != nil {
		return false, err
	}
	if s.pubKey == nil {
		return false, bserrors.Wrapf(bserrors.ErrInvalidInput, "no public key set: send `g` or `w` first")
	}
	if s.cfg.Add == nil {
		return false, bserrors.Wrapf(bserrors.ErrInvalidInput, "engine not configured with a point-addition formula")
	}
	return ecdsa.Verify(c, s.cfg.Multiplier, s.cfg.Add, s.hash, s.pubKey, message, r, sig), nil
}

// SetTrigger records the trigger-action bitmap, per the `t` command.
// Hardware-trigger interpretation is out of scope (spec.md §1 excludes
// GPIO/hardware abstraction); the engine only stores the value, and the
// `d` debug reply does not include it.
func (s *State) SetTrigger(bitmap uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger = bitmap
}

// Debug returns the engine's configured model and coordinate system
// names, per the `d` command's `"<model>,<coord>"` reply.
func (s *State) Debug() (model, coords string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Model.String(), s.cfg.System.String()
}
