package reduction

import "github.com/J08nY/ecsca-engine/bigint"

// noneContext is the trivial backend: every arithmetic op is "op mod n"
// with a straight division, per spec.md §4.2's "None" variant. encode/
// decode are the identity.
type noneContext struct {
	mod *bigint.Int
}

func newNone(m *bigint.Int) *noneContext { return &noneContext{mod: m} }

func (c *noneContext) Kind() Kind           { return None }
func (c *noneContext) Modulus() *bigint.Int { return c.mod }

func (c *noneContext) Encode(x *bigint.Int) *bigint.Int { return x.Mod(c.mod) }
func (c *noneContext) Decode(x *bigint.Int) *bigint.Int { return x.Mod(c.mod) }

func (c *noneContext) Add(x, y *bigint.Int) *bigint.Int { return x.ModAdd(y, c.mod) }
func (c *noneContext) Sub(x, y *bigint.Int) *bigint.Int { return x.ModSub(y, c.mod) }
func (c *noneContext) Neg(x *bigint.Int) *bigint.Int    { return x.ModNeg(c.mod) }

func (c *noneContext) Mul(x, y *bigint.Int) (*bigint.Int, error) { return x.ModMul(y, c.mod), nil }
func (c *noneContext) Sqr(x *bigint.Int) (*bigint.Int, error)    { return x.ModSqr(c.mod), nil }
func (c *noneContext) Inv(x *bigint.Int) (*bigint.Int, error)    { return x.ModInv(c.mod) }
func (c *noneContext) Div(x, y *bigint.Int) (*bigint.Int, error) { return x.ModDiv(y, c.mod) }
func (c *noneContext) Pow(x, exp *bigint.Int) (*bigint.Int, error) {
	return x.ModPow(exp, c.mod), nil
}

func (c *noneContext) Reduce(unreduced *bigint.Int) *bigint.Int { return unreduced.Mod(c.mod) }

func (c *noneContext) Clear() {}
