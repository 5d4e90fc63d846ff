package mathutil

import "math/big"

var one = big.NewInt(1)

// BitWidth returns the number of bits needed to hold v in two's
// complement, including the sign bit. Zero needs no bits at all.
func BitWidth(v *big.Int) int {
	switch v.Sign() {
	case 0:
		return 0
	case 1:
		return v.BitLen() + 1
	default:
		// ^v == -v-1, whose length is the magnitude length of v
		// in two's complement.
		return new(big.Int).Not(v).BitLen() + 1
	}
}

// Pow2 returns 2^n.
func Pow2(n uint) *big.Int {
	return new(big.Int).Lsh(one, n)
}

// FloorDivMod divides x by y rounding the quotient toward negative
// infinity; the remainder takes the sign of y.
// Panics if y is zero.
func FloorDivMod(x, y *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, one)
		r.Add(r, y)
	}
	return q, r
}

// Whole resolves v*2^shift to a plain integer.
// ok is false if the value has a fractional part, and also if a
// positive shift is too large to materialize in memory.
func Whole(v, shift *big.Int) (w *big.Int, ok bool) {
	if v.Sign() == 0 {
		return new(big.Int), true
	}
	if shift.Sign() >= 0 {
		n, ok := ToUint(shift)
		if !ok {
			return nil, false
		}
		return new(big.Int).Lsh(v, n), true
	}
	n, ok := ToUint(new(big.Int).Neg(shift))
	if !ok {
		// fewer trailing zero bits than any magnitude can carry
		return nil, false
	}
	if v.TrailingZeroBits() < n {
		return nil, false
	}
	return new(big.Int).Rsh(v, n), true
}

// ToUint reports whether v fits a uint shift count.
func ToUint(v *big.Int) (uint, bool) {
	if v.Sign() < 0 || !v.IsUint64() || v.Uint64() > uint64(^uint(0)) {
		return 0, false
	}
	return uint(v.Uint64()), true
}
