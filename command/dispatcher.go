package command

import (
	"bufio"
	"io"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
	"github.com/J08nY/ecsca-engine/der"
	"github.com/J08nY/ecsca-engine/engine"
	"github.com/J08nY/ecsca-engine/point"
)

var errMissingPoint = bserrors.Wrapf(bserrors.ErrInvalidInput, "TLV payload missing point coordinates wx/wy")

// Command letters, per spec.md §6's table.
const (
	CmdVersion    = 'v'
	CmdSeedPRNG   = 'i'
	CmdSetCurve   = 'c'
	CmdGenKeypair = 'g'
	CmdSetPrivKey = 's'
	CmdSetPubKey  = 'w'
	CmdMultiply   = 'm'
	CmdECDH       = 'e'
	CmdSign       = 'a'
	CmdVerify     = 'r'
	CmdSetTrigger = 't'
	CmdDebug      = 'd'
)

// protocolVersion is the single byte the `v` command acks with.
const protocolVersion = 1

// Dispatcher runs the single-threaded cooperative command loop spec.md
// §5 describes: one command at a time, synchronous, blocking on the
// transport for input, against the process-wide engine.State singleton.
type Dispatcher struct {
	Engine *engine.State
	out    *bufio.Writer
}

// NewDispatcher builds a Dispatcher replying on w against the given
// engine singleton.
func NewDispatcher(e *engine.State, w io.Writer) *Dispatcher {
	return &Dispatcher{Engine: e, out: bufio.NewWriter(w)}
}

// Serve blocks reading command frames from r until EOF or a read error,
// dispatching each to the engine and flushing the reply before the next
// read, per spec.md §5: "Every operation is synchronous; the outer
// command loop blocks on the transport for input."
func (d *Dispatcher) Serve(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		frame, err := ParseFrame(scanner.Text())
		if err != nil {
			d.status(StatusInvalidInput)
			if ferr := d.out.Flush(); ferr != nil {
				return ferr
			}
			continue
		}
		d.handle(frame)
		if err := d.out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (d *Dispatcher) status(s byte) {
	_, _ = d.out.WriteString(FormatStatus(s))
}

func (d *Dispatcher) result(letter byte, payload []byte) {
	_, _ = d.out.WriteString(FormatFrame(letter, payload))
}

func (d *Dispatcher) fail(err error) {
	d.status(statusFor(err))
}

func (d *Dispatcher) handle(f Frame) {
	switch f.Letter {
	case CmdVersion:
		d.status(StatusOK)
		d.result(CmdVersion, []byte{protocolVersion})

	case CmdSeedPRNG:
		d.Engine.SeedPRNG(f.Payload)
		d.status(StatusOK)

	case CmdSetCurve:
		d.handleSetCurve(f.Payload)

	case CmdGenKeypair:
		d.handleGenKeypair()

	case CmdSetPrivKey:
		d.handleSetPrivKey(f.Payload)

	case CmdSetPubKey:
		d.handleSetPubKey(f.Payload)

	case CmdMultiply:
		d.handleMultiply(f.Payload)

	case CmdECDH:
		d.handleECDH(f.Payload)

	case CmdSign:
		d.handleSign(f.Payload)

	case CmdVerify:
		d.handleVerify(f.Payload)

	case CmdSetTrigger:
		d.handleSetTrigger(f.Payload)

	case CmdDebug:
		d.handleDebug(f.Payload)

	default:
		d.status(StatusInvalidInput)
	}
}

func (d *Dispatcher) handleSetCurve(payload []byte) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		d.fail(err)
		return
	}
	if err := d.Engine.SetCurveParams(raw); err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
}

func (d *Dispatcher) handleGenKeypair() {
	priv, x, y, err := d.Engine.GenerateKeypair()
	if err != nil {
		d.fail(err)
		return
	}
	modBytes, ordBytes, err := d.Engine.FieldWidths()
	if err != nil {
		d.fail(err)
		return
	}
	privBytes, err := priv.ToBinPadded(ordBytes)
	if err != nil {
		d.fail(err)
		return
	}
	xy, err := packXY(x, y, modBytes)
	if err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
	d.result('s', privBytes) // `g` reply: `s` privkey, `w` public affine x||y
	d.result('w', xy)
}

func (d *Dispatcher) handleSetPrivKey(payload []byte) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		d.fail(err)
		return
	}
	s, ok := raw["s"]
	if !ok {
		d.status(StatusInvalidInput)
		return
	}
	d.Engine.SetPrivKey(bigint.FromBytes(s))
	d.status(StatusOK)
}

func (d *Dispatcher) handleSetPubKey(payload []byte) {
	x, y, err := decodePoint(payload)
	if err != nil {
		d.fail(err)
		return
	}
	if err := d.Engine.SetPubKey(x, y); err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
}

func (d *Dispatcher) handleMultiply(payload []byte) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		d.fail(err)
		return
	}
	sBytes, ok := raw["s"]
	if !ok {
		d.status(StatusInvalidInput)
		return
	}
	scalar := bigint.FromBytes(sBytes)

	var p *point.Point
	if _, hasX := raw["wx"]; hasX {
		x, y, err := decodePointFromRaw(raw)
		if err != nil {
			d.fail(err)
			return
		}
		p, err = d.Engine.PointFromAffine(x, y)
		if err != nil {
			d.fail(err)
			return
		}
	}

	x, y, err := d.Engine.Multiply(scalar, p)
	if err != nil {
		d.fail(err)
		return
	}
	modBytes, _, err := d.Engine.FieldWidths()
	if err != nil {
		d.fail(err)
		return
	}
	xy, err := packXY(x, y, modBytes)
	if err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
	d.result('w', xy) // `m` reply: `w` result coords
}

func (d *Dispatcher) handleECDH(payload []byte) {
	x, y, err := decodePoint(payload)
	if err != nil {
		d.fail(err)
		return
	}
	secret, err := d.Engine.ECDH(x, y)
	if err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
	d.result('r', secret) // `e` reply: `r` hashed shared secret
}

func (d *Dispatcher) handleSign(payload []byte) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		d.fail(err)
		return
	}
	message, ok := raw["d"]
	if !ok {
		d.status(StatusInvalidInput)
		return
	}
	r, s, err := d.Engine.Sign(message)
	if err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
	d.result('s', der.EncodeSignature(r, s)) // `a` reply: `s` DER signature
}

func (d *Dispatcher) handleVerify(payload []byte) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		d.fail(err)
		return
	}
	message, hasMessage := raw["d"]
	sigBytes, hasSig := raw["s"]
	if !hasMessage || !hasSig {
		d.status(StatusInvalidInput)
		return
	}
	r, s, err := der.DecodeSignature(sigBytes)
	if err != nil {
		d.status(StatusOK)
		d.result('v', []byte{0}) // `r` reply: `v` 0/1
		return
	}
	ok, err := d.Engine.Verify(message, r, s)
	if err != nil {
		d.fail(err)
		return
	}
	d.status(StatusOK)
	if ok {
		d.result('v', []byte{1})
	} else {
		d.result('v', []byte{0})
	}
}

func (d *Dispatcher) handleSetTrigger(payload []byte) {
	if len(payload) != 4 {
		d.status(StatusInvalidInput)
		return
	}
	bitmap := uint32(payload[0]) | uint32(payload[1])<<8 | uint32(payload[2])<<16 | uint32(payload[3])<<24
	d.Engine.SetTrigger(bitmap)
	d.status(StatusOK)
}

// handleDebug replies with the request payload echoed back under `r`
// (a liveness/round-trip check) followed by a `d` frame naming the
// engine's configured curve model and coordinate system, per spec.md §6:
// "`r` echo, `d` \"<model>,<coord>\"".
func (d *Dispatcher) handleDebug(payload []byte) {
	model, coords := d.Engine.Debug()
	d.status(StatusOK)
	d.result(CmdVerify, payload)
	d.result(CmdDebug, []byte(model+","+coords))
}

// decodePoint decodes a TLV payload whose root holds a "wx"/"wy" point
// (spec.md §6's `w` and `e` command payloads: "TLV wx,wy").
func decodePoint(payload []byte) (x, y *bigint.Int, err error) {
	raw, err := DecodeTLV(payload)
	if err != nil {
		return nil, nil, err
	}
	return decodePointFromRaw(raw)
}

func decodePointFromRaw(raw map[string][]byte) (x, y *bigint.Int, err error) {
	xBytes, okX := raw["wx"]
	yBytes, okY := raw["wy"]
	if !okX || !okY {
		return nil, nil, errMissingPoint
	}
	return bigint.FromBytes(xBytes), bigint.FromBytes(yBytes), nil
}

// packXY concatenates x and y each padded to width bytes, per spec.md
// §6's `x‖y` reply shape.
func packXY(x, y *bigint.Int, width int) ([]byte, error) {
	xBytes, err := x.ToBinPadded(width)
	if err != nil {
		return nil, err
	}
	yBytes, err := y.ToBinPadded(width)
	if err != nil {
		return nil, err
	}
	return append(xBytes, yBytes...), nil
}
