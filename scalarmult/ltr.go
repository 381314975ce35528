package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
)

// LTRMultiplier is left-to-right double-and-add, grounded on
// original_source/pyecsca/codegen/templates/mult_ltr.c: scan the scalar's
// bits most-significant-first, always doubling, adding the base point
// only on a set bit (or, with Always set, also performing the add into a
// throwaway accumulator on an unset bit, for constant-time op sequencing).
type LTRMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewLTRMultiplier(cfg Config, formulas FormulaSet) *LTRMultiplier {
	return &LTRMultiplier{Config: cfg, Formulas: formulas}
}

func (m *LTRMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	var q, dummy *point.Point
	var err error
	var nbits int
	if m.Config.Complete {
		q, err = neutralOf(curve)
		if err != nil {
			return nil, err
		}
		nbits = bitLength(m.Config, curve.Order().BitLen(), scalar) - 1
	} else {
		q = p.Copy()
		nbits = scalar.BitLen() - 2
	}
	if m.Config.Always {
		dummy = point.New(p.System)
	}

	for i := nbits; i >= 0; i-- {
		q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
		if err != nil {
			return nil, err
		}
		if scalar.Bit(i) == 1 {
			q, err = m.Formulas.Add.Apply(curve, q, p, nil)
			if err != nil {
				return nil, err
			}
		} else if m.Config.Always {
			dummy, err = m.Formulas.Add.Apply(curve, q, p, nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, q)
}

// RTLMultiplier is right-to-left double-and-add, grounded on
// original_source/pyecsca/codegen/templates/mult_rtl.c: scan the scalar's
// bits least-significant-first, accumulating into the result on a set bit
// and doubling the running base point every iteration.
type RTLMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewRTLMultiplier(cfg Config, formulas FormulaSet) *RTLMultiplier {
	return &RTLMultiplier{Config: cfg, Formulas: formulas}
}

func (m *RTLMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	var dummy *point.Point
	if m.Config.Always {
		dummy = point.New(p.System)
	}

	base := p.Copy()
	remaining := scalar.Clone()
	for !remaining.IsZero() {
		if remaining.Bit(0) == 1 {
			q, err = m.Formulas.Add.Apply(curve, q, base, nil)
			if err != nil {
				return nil, err
			}
		} else if m.Config.Always {
			dummy, err = m.Formulas.Add.Apply(curve, q, base, nil)
			if err != nil {
				return nil, err
			}
		}
		base, err = m.Formulas.Dbl.Apply(curve, base, nil, nil)
		if err != nil {
			return nil, err
		}
		remaining = remaining.Rsh(1)
	}
	_ = dummy
	return scl(m.Formulas, curve, q)
}
