package fixbv

import (
	"iter"
	"math"
	"math/big"

	mu "github.com/gohdl/fixbv/internal/mathutil"
)

// bitPos resolves a logical bit position to an index into the stored
// magnitude. Positions count from the binary point: position i holds
// the coefficient of 2^i, so the stored index is i - shift.
func (v *Value) bitPos(i int) (int, error) {
	pos := new(big.Int).Sub(big.NewInt(int64(i)), &v.shift)
	if pos.Sign() < 0 {
		return 0, ErrInvalidRange.New("bit %d is below the scale of %s", i, v)
	}
	if !pos.IsInt64() || pos.Int64() > math.MaxInt {
		return 0, ErrInvalidRange.New("bit %d is beyond the addressable range of %s", i, v)
	}
	return int(pos.Int64()), nil
}

// slicePos resolves the half-open logical range [high:low) into stored
// indices.
func (v *Value) slicePos(high, low int) (hi, lo int, err error) {
	if lo, err = v.bitPos(low); err != nil {
		return 0, 0, err
	}
	if hi, err = v.bitPos(high); err != nil {
		return 0, 0, err
	}
	if hi <= lo {
		return 0, 0, ErrInvalidRange.New("[%d:%d) requires high above low", high, low)
	}
	return hi, lo, nil
}

// Bit returns the bit at logical position i, the coefficient of 2^i in
// the represented number. Positions at or above the stored width read
// as the two's-complement sign extension. Positions below the scale
// fail with ErrInvalidRange.
func (v *Value) Bit(i int) (bool, error) {
	pos, err := v.bitPos(i)
	if err != nil {
		return false, err
	}
	return v.si.Bit(pos) == 1, nil
}

// SetBit sets the bit at logical position i to b, which must be 0 or 1
// (ErrInvalidBitValue). The new magnitude is validated against the
// bounds before anything changes; on error the value is untouched.
func (v *Value) SetBit(i int, b uint) error {
	if b > 1 {
		return ErrInvalidBitValue.New("%d", b)
	}
	pos, err := v.bitPos(i)
	if err != nil {
		return err
	}
	return v.commit(new(big.Int).SetBit(&v.si, pos, b))
}

// Slice extracts the bits [high:low) as a plain non-negative integer:
// bit low of v becomes bit 0 of the result.
func (v *Value) Slice(high, low int) (*big.Int, error) {
	hi, lo, err := v.slicePos(high, low)
	if err != nil {
		return nil, err
	}
	res := new(big.Int).And(&v.si, new(big.Int).Sub(mu.Pow2(uint(hi)), one))
	return res.Rsh(res, uint(lo)), nil
}

// SliceFrom extracts every bit from logical position low upward, sign
// included: the magnitude is arithmetically shifted right, so negative
// values stay negative.
func (v *Value) SliceFrom(low int) (*big.Int, error) {
	lo, err := v.bitPos(low)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Rsh(&v.si, uint(lo)), nil
}

// SetSlice replaces the bits [high:low) with val, which must fit the
// signed field: -2^w <= val < 2^w for w = high-low (ErrValueTooLarge).
// A negative val is stored as its two's complement within the field
// and sign-extends the magnitude. Bounds are validated before anything
// changes.
func (v *Value) SetSlice(high, low int, val *big.Int) error {
	hi, lo, err := v.slicePos(high, low)
	if err != nil {
		return err
	}
	lim := mu.Pow2(uint(hi - lo))
	if val.Cmp(lim) >= 0 || val.Cmp(new(big.Int).Neg(lim)) < 0 {
		return ErrValueTooLarge.New("%s does not fit %d bits", val, hi-lo)
	}
	mask := new(big.Int).Sub(lim, one)
	mask.Lsh(mask, uint(lo))
	m := new(big.Int).AndNot(&v.si, mask)
	m.Or(m, new(big.Int).Lsh(val, uint(lo)))
	return v.commit(m)
}

// SetSliceFrom replaces every bit from logical position low upward
// with val, keeping the bits below: the new magnitude is val shifted
// up plus the old magnitude's non-negative remainder mod 2^position.
// There is no width check. Bounds are validated before anything
// changes.
func (v *Value) SetSliceFrom(low int, val *big.Int) error {
	lo, err := v.bitPos(low)
	if err != nil {
		return err
	}
	m := new(big.Int).Lsh(val, uint(lo))
	m.Add(m, new(big.Int).Mod(&v.si, mu.Pow2(uint(lo))))
	return v.commit(m)
}

// Bits returns the value's bit pattern as a lazy sequence of booleans,
// the most significant of the BitWidth bits first. The sequence
// snapshots the magnitude and can be ranged over any number of times.
// A value with no width fails with ErrNotIterable.
func (v *Value) Bits() (iter.Seq[bool], error) {
	w := v.BitWidth()
	if w == 0 {
		return nil, ErrNotIterable.New("%#v has no width", v)
	}
	si := v.Unscaled()
	return func(yield func(bool) bool) {
		for i := w - 1; i >= 0; i-- {
			if !yield(si.Bit(i) == 1) {
				return
			}
		}
	}, nil
}
