package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
)

// SimpleLadderMultiplier is the textbook Montgomery ladder expressed with
// ordinary add/dbl formulas rather than a dedicated x-only differential
// step, grounded on
// original_source/pyecsca/codegen/templates/mult_simple_ldr.c: it works
// over any coordinate system's add/dbl pair, unlike the differential and
// combined ladders below which need Montgomery's x-only dadd/ladd.
type SimpleLadderMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewSimpleLadderMultiplier(cfg Config, formulas FormulaSet) *SimpleLadderMultiplier {
	return &SimpleLadderMultiplier{Config: cfg, Formulas: formulas}
}

func (m *SimpleLadderMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	p0, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	p1 := p.Copy()

	var nbits int
	if m.Config.Complete {
		nbits = curve.Order().BitLen() - 1
	} else {
		nbits = scalar.BitLen() - 1
	}

	for i := nbits; i >= 0; i-- {
		if scalar.Bit(i) == 0 {
			p1, err = m.Formulas.Add.Apply(curve, p0, p1, nil)
			if err != nil {
				return nil, err
			}
			p0, err = m.Formulas.Dbl.Apply(curve, p0, nil, nil)
			if err != nil {
				return nil, err
			}
		} else {
			p0, err = m.Formulas.Add.Apply(curve, p0, p1, nil)
			if err != nil {
				return nil, err
			}
			p1, err = m.Formulas.Dbl.Apply(curve, p1, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, p0)
}

// DifferentialLadderMultiplier is the Montgomery ladder using the x-only
// differential-addition formula, grounded on
// original_source/pyecsca/codegen/templates/mult_diff_ldr.c: dadd needs
// the fixed difference p0-p1 (always the base point p, preserved as the
// ladder invariant) as a third operand alongside the running registers.
type DifferentialLadderMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewDifferentialLadderMultiplier(cfg Config, formulas FormulaSet) *DifferentialLadderMultiplier {
	return &DifferentialLadderMultiplier{Config: cfg, Formulas: formulas}
}

func (m *DifferentialLadderMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	p0, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	p1 := p.Copy()

	var nbits int
	if m.Config.Complete {
		nbits = curve.Order().BitLen() - 1
	} else {
		nbits = scalar.BitLen() - 1
	}

	for i := nbits; i >= 0; i-- {
		if scalar.Bit(i) == 0 {
			p1, err = m.Formulas.Dadd.Apply(curve, p0, p1, p)
			if err != nil {
				return nil, err
			}
			p0, err = m.Formulas.Dbl.Apply(curve, p0, nil, nil)
			if err != nil {
				return nil, err
			}
		} else {
			p0, err = m.Formulas.Dadd.Apply(curve, p0, p1, p)
			if err != nil {
				return nil, err
			}
			p1, err = m.Formulas.Dbl.Apply(curve, p1, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, p0)
}

// CombinedLadderMultiplier uses the fused "ladd" xDBLADD step, grounded
// on original_source/pyecsca/codegen/templates/mult_ldr.c: one formula
// invocation per bit produces both p0's double and p0+p1 (or p1's double
// and p1+p0, depending on the bit), in place of the two separate calls
// the differential ladder above needs.
type CombinedLadderMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewCombinedLadderMultiplier(cfg Config, formulas FormulaSet) *CombinedLadderMultiplier {
	return &CombinedLadderMultiplier{Config: cfg, Formulas: formulas}
}

func (m *CombinedLadderMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	var p0, p1 *point.Point
	var err error
	var nbits int
	if m.Config.Complete {
		p0, err = neutralOf(curve)
		if err != nil {
			return nil, err
		}
		p1 = p.Copy()
		nbits = curve.Order().BitLen() - 1
	} else {
		p0 = p.Copy()
		p1, err = m.Formulas.Dbl.Apply(curve, p, nil, nil)
		if err != nil {
			return nil, err
		}
		nbits = scalar.BitLen() - 2
	}

	for i := nbits; i >= 0; i-- {
		if scalar.Bit(i) == 0 {
			p0, p1, err = m.Formulas.Ladd.ApplyLadd(curve, p0, p1, p)
		} else {
			p1, p0, err = m.Formulas.Ladd.ApplyLadd(curve, p1, p0, p)
		}
		if err != nil {
			return nil, err
		}
	}
	return scl(m.Formulas, curve, p0)
}
