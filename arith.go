// Copyright 2024 The fixbv Authors. All rights reserved.

package fixbv

import (
	"math/big"

	mu "github.com/gohdl/fixbv/internal/mathutil"
)

// Align returns copies of x and y rescaled to their common shift,
// which is the smaller of the two. The operand with the larger shift
// has its magnitude shifted left by the difference, so both results
// represent their numbers exactly. Results carry no bounds.
// Panics if the shift difference is too large to materialize.
func Align(x, y *Value) (*Value, *Value) {
	xm, ym, s := alignMag(x, y)
	return fromParts(xm, s), fromParts(ym, s)
}

// alignMag rescales the magnitudes of x and y to their common shift.
// The results are read-only; they may alias the inputs.
func alignMag(x, y *Value) (xm, ym, shift *big.Int) {
	switch d := x.shift.Cmp(&y.shift); {
	case d == 0:
		return &x.si, &y.si, &x.shift
	case d > 0:
		return rescaled(&x.si, &x.shift, &y.shift), &y.si, &y.shift
	default:
		return &x.si, rescaled(&y.si, &y.shift, &x.shift), &x.shift
	}
}

// rescaled returns m shifted left by from-to; to must not exceed from.
func rescaled(m, from, to *big.Int) *big.Int {
	n, ok := mu.ToUint(new(big.Int).Sub(from, to))
	if !ok {
		panic("fixbv: shift difference too large to materialize")
	}
	return new(big.Int).Lsh(m, n)
}

// Add returns x + y. The operands are aligned first; the result keeps
// their common shift.
func (x *Value) Add(y Operand) *Value {
	a, b, s := alignMag(x, y.value())
	return fromParts(new(big.Int).Add(a, b), s)
}

// Sub returns x - y, aligned the same way as Add.
func (x *Value) Sub(y Operand) *Value {
	a, b, s := alignMag(x, y.value())
	return fromParts(new(big.Int).Sub(a, b), s)
}

// Mul returns x * y. No alignment takes place: the magnitudes multiply
// and the shifts add.
func (x *Value) Mul(y Operand) *Value {
	yv := y.value()
	m := new(big.Int).Mul(&x.si, &yv.si)
	return fromParts(m, new(big.Int).Add(&x.shift, &yv.shift))
}

// FloorDiv returns the quotient of x / y rounded toward negative
// infinity. The operands are aligned, so the quotient is dimensionless
// and carries shift 0.
// Panics if y is zero.
func (x *Value) FloorDiv(y Operand) *Value {
	a, b, _ := alignMag(x, y.value())
	q, _ := mu.FloorDivMod(a, b)
	return fromParts(q, new(big.Int))
}

// Mod returns the remainder of floored division, x - FloorDiv(x, y)*y
// in represented numbers. The remainder takes the sign of y and keeps
// the common shift.
// Panics if y is zero.
func (x *Value) Mod(y Operand) *Value {
	a, b, s := alignMag(x, y.value())
	_, r := mu.FloorDivMod(a, b)
	return fromParts(r, s)
}

// Div is not defined for fixed-point values: an exact quotient has no
// finite binary representation in general. Use FloorDiv, or Rat for
// exact rational division.
func (x *Value) Div(y Operand) (*Value, error) {
	return nil, ErrUnsupportedOperation.New("true division of fixed-point values")
}

// Pow raises x to a whole-number power: the magnitude is raised to it
// and the shift is multiplied by it. The exponent must resolve to a
// whole number (ErrNonIntegerExponent) and must not be negative
// (ErrUnsupportedOperation).
func (x *Value) Pow(y Operand) (*Value, error) {
	yv := y.value()
	n, ok := mu.Whole(&yv.si, &yv.shift)
	if !ok {
		return nil, ErrNonIntegerExponent.New("%s", yv)
	}
	if n.Sign() < 0 {
		return nil, ErrUnsupportedOperation.New("negative power %s", n)
	}
	m := new(big.Int).Exp(&x.si, n, nil)
	return fromParts(m, new(big.Int).Mul(&x.shift, n)), nil
}

// Lsh moves the binary point: the shift grows by y, which must resolve
// to a whole number (ErrNonIntegerShift). The magnitude is unchanged.
func (x *Value) Lsh(y Operand) (*Value, error) {
	n, err := wholeShift(y)
	if err != nil {
		return nil, err
	}
	return fromParts(&x.si, new(big.Int).Add(&x.shift, n)), nil
}

// Rsh decreases the shift by y, see Lsh.
func (x *Value) Rsh(y Operand) (*Value, error) {
	n, err := wholeShift(y)
	if err != nil {
		return nil, err
	}
	return fromParts(&x.si, new(big.Int).Sub(&x.shift, n)), nil
}

func wholeShift(y Operand) (*big.Int, error) {
	yv := y.value()
	n, ok := mu.Whole(&yv.si, &yv.shift)
	if !ok {
		return nil, ErrNonIntegerShift.New("%s", yv)
	}
	return n, nil
}

// Neg returns x with the magnitude negated, shift unchanged.
func (x *Value) Neg() *Value {
	return fromParts(new(big.Int).Neg(&x.si), &x.shift)
}

// Abs returns x with the magnitude made non-negative, shift unchanged.
func (x *Value) Abs() *Value {
	return fromParts(new(big.Int).Abs(&x.si), &x.shift)
}

// And is not defined for fixed-point values: bitwise combination
// across binary points has no consistent meaning.
func (x *Value) And(y Operand) (*Value, error) {
	return nil, ErrUnsupportedOperation.New("bitwise and of fixed-point values")
}

// Or is not defined, see And.
func (x *Value) Or(y Operand) (*Value, error) {
	return nil, ErrUnsupportedOperation.New("bitwise or of fixed-point values")
}

// Xor is not defined, see And.
func (x *Value) Xor(y Operand) (*Value, error) {
	return nil, ErrUnsupportedOperation.New("bitwise xor of fixed-point values")
}

// Invert flips all BitWidth bits of the magnitude, keeping the shift.
// It is defined only for bounded values with a non-negative range,
// where the stored pattern has a fixed width; anything else fails with
// ErrUnsupportedOperation.
func (x *Value) Invert() (*Value, error) {
	w := x.BitWidth()
	if w == 0 || x.min.Sign() < 0 {
		return nil, ErrUnsupportedOperation.New("invert requires a bounded non-negative value")
	}
	m := new(big.Int).Not(&x.si)
	m.And(m, new(big.Int).Sub(mu.Pow2(uint(w)), one))
	return fromParts(m, &x.shift), nil
}

// Cmp compares the represented numbers after alignment.
// The result is -1 for x < y, 0 for x == y, and 1 for x > y.
func (x *Value) Cmp(y Operand) int {
	a, b, _ := alignMag(x, y.value())
	return a.Cmp(b)
}

// Eq reports whether x and y represent the same number, whatever their
// representations.
func (x *Value) Eq(y Operand) bool {
	return x.Cmp(y) == 0
}

// Less reports x < y.
func (x *Value) Less(y Operand) bool {
	return x.Cmp(y) < 0
}

// LessEq reports x <= y.
func (x *Value) LessEq(y Operand) bool {
	return x.Cmp(y) <= 0
}

// Greater reports x > y, the negation of LessEq.
func (x *Value) Greater(y Operand) bool {
	return !x.LessEq(y)
}

// GreaterEq reports x >= y, the negation of Less.
func (x *Value) GreaterEq(y Operand) bool {
	return !x.Less(y)
}
