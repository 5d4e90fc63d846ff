// Copyright 2024 The fixbv Authors. All rights reserved.

// Package fixbv implements an arbitrary-precision binary fixed-point
// value: an integer magnitude scaled by a power of two. It is meant as
// the numeric foundation for register and signal modeling, where
// values carry explicit ranges and expose their bit patterns.
package fixbv

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	mu "github.com/gohdl/fixbv/internal/mathutil"
)

var (
	one  = big.NewInt(1)
	five = big.NewInt(5)
)

// Value is a binary fixed-point number. The represented number is
//
//	magnitude * 2^shift
//
// so a magnitude of 11 at shift -3 holds 11/8 = 1.375. Both the
// magnitude and the shift are arbitrary-precision integers.
//
// A Value may carry a pair of bounds, expressed in magnitude units at
// the value's own shift. The magnitude must stay inside the half-open
// interval [min, max); every mutation re-validates it. Bounds give the
// value a bit width, see BitWidth.
//
// Operators return new values and never attach bounds to results;
// reattach them with WithBounds where range enforcement is wanted.
//
// Equal numbers have many representations (1 at shift 1 and 2 at
// shift 0 both hold 2), so Value is deliberately not comparable with
// == and cannot be used as a map key; compare with Eq or Cmp.
//
// The zero Value is valid and holds 0 * 2^0, unbounded. Values are not
// safe for concurrent mutation.
type Value struct {
	noCompare [0]func()

	si    big.Int
	shift big.Int
	// both nil or both set, in the units of si
	min, max *big.Int
}

// New returns an unbounded value representing unscaled * 2^shift.
// The unscaled integer is copied.
func New(unscaled *big.Int, shift int64) *Value {
	v := &Value{}
	v.si.Set(unscaled)
	v.shift.SetInt64(shift)
	return v
}

// NewInt64 returns an unbounded value representing unscaled * 2^shift.
func NewInt64(unscaled, shift int64) *Value {
	return New(big.NewInt(unscaled), shift)
}

// NewWithBounds returns a value with bounds attached. min and max are
// in the same units as unscaled and form a half-open interval, so
// min <= unscaled < max must hold (ErrOutOfRange). Both bounds must be
// given together and min must be below max (ErrInvalidBounds).
func NewWithBounds(unscaled *big.Int, shift int64, min, max *big.Int) (*Value, error) {
	return New(unscaled, shift).WithBounds(min, max)
}

// fromParts builds an unbounded value copying the given magnitude and shift.
func fromParts(m, shift *big.Int) *Value {
	v := &Value{}
	v.si.Set(m)
	v.shift.Set(shift)
	return v
}

// Copy returns a deep copy of v, bounds included.
func (v *Value) Copy() *Value {
	res := fromParts(&v.si, &v.shift)
	if v.min != nil {
		res.min = new(big.Int).Set(v.min)
		res.max = new(big.Int).Set(v.max)
	}
	return res
}

// WithBounds returns a copy of v with the bounds attached and the
// magnitude validated against them. Operators drop bounds from their
// results, so accumulation that needs range enforcement reattaches
// them on every step:
//
//	acc, err = acc.Add(step).WithBounds(min, max)
//
// Passing two nils returns an unbounded copy.
func (v *Value) WithBounds(min, max *big.Int) (*Value, error) {
	if (min == nil) != (max == nil) {
		return nil, ErrInvalidBounds.New("min and max must be given together")
	}
	res := fromParts(&v.si, &v.shift)
	if min == nil {
		return res, nil
	}
	if min.Cmp(max) >= 0 {
		return nil, ErrInvalidBounds.New("min %s is not below max %s", min, max)
	}
	res.min = new(big.Int).Set(min)
	res.max = new(big.Int).Set(max)
	if err := res.checkMag(&res.si); err != nil {
		return nil, err
	}
	return res, nil
}

// WithoutBounds returns a copy of v with no bounds.
func (v *Value) WithoutBounds() *Value {
	return fromParts(&v.si, &v.shift)
}

// checkMag validates a candidate magnitude against the bounds.
func (v *Value) checkMag(m *big.Int) error {
	if v.min == nil {
		return nil
	}
	if m.Cmp(v.min) < 0 || m.Cmp(v.max) >= 0 {
		return ErrOutOfRange.New("%s not in [%s, %s)", m, v.min, v.max)
	}
	return nil
}

// commit stores a candidate magnitude after validating it.
// The receiver is untouched on error.
func (v *Value) commit(m *big.Int) error {
	if err := v.checkMag(m); err != nil {
		return err
	}
	v.si.Set(m)
	return nil
}

// Unscaled returns a copy of the stored integer magnitude.
func (v *Value) Unscaled() *big.Int {
	return new(big.Int).Set(&v.si)
}

// Shift returns a copy of the binary shift.
// The represented number is Unscaled() * 2^Shift().
func (v *Value) Shift() *big.Int {
	return new(big.Int).Set(&v.shift)
}

// FractionLength returns the number of fractional binary digits, the
// negated shift.
func (v *Value) FractionLength() *big.Int {
	return new(big.Int).Neg(&v.shift)
}

// Bounds returns copies of the bounds, if present.
func (v *Value) Bounds() (min, max *big.Int, ok bool) {
	if v.min == nil {
		return nil, nil, false
	}
	return new(big.Int).Set(v.min), new(big.Int).Set(v.max), true
}

// Sign returns -1, 0, or 1 depending on the sign of the number.
func (v *Value) Sign() int {
	return v.si.Sign()
}

// IsZero reports whether the represented number is zero.
func (v *Value) IsZero() bool {
	return v.si.Sign() == 0
}

// BitWidth returns the minimum two's-complement width holding every
// magnitude the bounds allow, or 0 for an unbounded value. A width of
// 0 is also possible with bounds: [0, 1) admits only the empty
// bit pattern.
func (v *Value) BitWidth() int {
	if v.min == nil {
		return 0
	}
	w := mu.BitWidth(new(big.Int).Sub(v.max, one))
	if mw := mu.BitWidth(v.min); mw > w {
		w = mw
	}
	return w
}

// Float64 returns the represented number as a float64. The conversion
// is lossy; magnitudes beyond the float64 range saturate to ±Inf and
// vanishing ones collapse to 0.
func (v *Value) Float64() float64 {
	if v.si.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetInt(&v.si)
	f.SetMantExp(f, clampedShift(&v.shift))
	res, _ := f.Float64()
	return res
}

// clampedShift narrows a big shift to an int big.Float can take;
// anything beyond the clamp over- or underflows float64 anyway.
func clampedShift(shift *big.Int) int {
	const lim = 1 << 20
	if !shift.IsInt64() {
		if shift.Sign() > 0 {
			return lim
		}
		return -lim
	}
	s := shift.Int64()
	if s > lim {
		return lim
	}
	if s < -lim {
		return -lim
	}
	return int(s)
}

// IntPart returns the represented number truncated toward zero.
// Panics if a positive shift is too large to materialize.
func (v *Value) IntPart() *big.Int {
	if v.si.Sign() == 0 {
		return new(big.Int)
	}
	if v.shift.Sign() >= 0 {
		n, ok := mu.ToUint(&v.shift)
		if !ok {
			panic("fixbv: shift too large to materialize")
		}
		return new(big.Int).Lsh(&v.si, n)
	}
	n, ok := mu.ToUint(new(big.Int).Neg(&v.shift))
	if !ok || n >= uint(v.si.BitLen()) {
		// the whole magnitude is fractional
		return new(big.Int)
	}
	return new(big.Int).Quo(&v.si, mu.Pow2(n))
}

// Rat returns the represented number as an exact rational.
// Panics if the shift is too large to materialize.
func (v *Value) Rat() *big.Rat {
	if v.si.Sign() == 0 {
		return new(big.Rat)
	}
	if v.shift.Sign() >= 0 {
		n, ok := mu.ToUint(&v.shift)
		if !ok {
			panic("fixbv: shift too large to materialize")
		}
		return new(big.Rat).SetInt(new(big.Int).Lsh(&v.si, n))
	}
	n, ok := mu.ToUint(new(big.Int).Neg(&v.shift))
	if !ok {
		panic("fixbv: shift too large to materialize")
	}
	return new(big.Rat).SetFrac(&v.si, mu.Pow2(n))
}

// Decimal returns the represented number as an exact decimal.
// A binary scale always converts exactly: 2^-n equals 5^n * 10^-n, so
// a negative shift becomes the same number of decimal places.
// Fails if the shift does not fit the decimal exponent range.
func (v *Value) Decimal() (decimal.Decimal, error) {
	if v.si.Sign() == 0 {
		return decimal.Decimal{}, nil
	}
	if v.shift.Sign() >= 0 {
		n, ok := mu.ToUint(&v.shift)
		if !ok {
			return decimal.Decimal{}, errs.New("shift %s exceeds decimal range", &v.shift)
		}
		return decimal.NewFromBigInt(new(big.Int).Lsh(&v.si, n), 0), nil
	}
	if !v.shift.IsInt64() || v.shift.Int64() < math.MinInt32 {
		return decimal.Decimal{}, errs.New("shift %s exceeds decimal range", &v.shift)
	}
	coeff := new(big.Int).Exp(five, new(big.Int).Neg(&v.shift), nil)
	coeff.Mul(coeff, &v.si)
	return decimal.NewFromBigInt(coeff, int32(v.shift.Int64())), nil
}

// String renders the value as "<magnitude> * 2^<shift>".
func (v *Value) String() string {
	return fmt.Sprintf("%s * 2^%s", v.si.String(), v.shift.String())
}

// GoString returns a debug representation including bounds and width.
func (v *Value) GoString() string {
	if v.min == nil {
		return fmt.Sprintf("fixbv(%s)", v.String())
	}
	return fmt.Sprintf("fixbv(%s, min=%s, max=%s, width=%d)", v.String(), v.min, v.max, v.BitWidth())
}
