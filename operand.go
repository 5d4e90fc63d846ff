package fixbv

import "math/big"

// An Operand is the right-hand side of an arithmetic or comparison
// operation: either a *Value, or a raw integer adapted with Int or
// BigInt. Raw integers take part as values with shift 0. The set is
// closed on purpose; there are no implicit conversions from floats or
// other numeric types.
type Operand interface {
	value() *Value
}

func (v *Value) value() *Value { return v }

type intOperand struct {
	x *big.Int
}

func (o intOperand) value() *Value {
	v := &Value{}
	v.si.Set(o.x)
	return v
}

// Int adapts a machine integer for use as an operand.
func Int(x int64) Operand {
	return intOperand{x: big.NewInt(x)}
}

// BigInt adapts an arbitrary-precision integer for use as an operand.
func BigInt(x *big.Int) Operand {
	return intOperand{x: x}
}
