package fixbv

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	a := assert.New(t)
	v := NewInt64(214, 0) // 0b11010110
	want := []int{0, 1, 1, 0, 1, 0, 1, 1, 0, 0}
	for i, w := range want {
		b, err := v.Bit(i)
		a.NoError(err)
		a.Equal(w == 1, b, "bit %d", i)
	}

	// logical positions follow the scale
	v = NewInt64(214, -3)
	b, err := v.Bit(-3)
	a.NoError(err)
	a.False(b)
	b, err = v.Bit(1)
	a.NoError(err)
	a.True(b)
	_, err = v.Bit(-4)
	a.True(ErrInvalidRange.Has(err), "got %v", err)

	// negative magnitudes read as two's complement
	v = NewInt64(-2, 0)
	b, err = v.Bit(0)
	a.NoError(err)
	a.False(b)
	for _, i := range []int{1, 2, 63, 200} {
		b, err = v.Bit(i)
		a.NoError(err)
		a.True(b, "bit %d", i)
	}
}

func TestSetBit(t *testing.T) {
	a := assert.New(t)
	v := NewInt64(214, 0)
	a.NoError(v.SetBit(0, 1))
	a.Equal("215 * 2^0", v.String())
	a.NoError(v.SetBit(1, 0))
	a.Equal("213 * 2^0", v.String())
	a.NoError(v.SetBit(64, 1))
	a.Equal("18446744073709551829", v.Unscaled().String())

	err := v.SetBit(0, 2)
	a.True(ErrInvalidBitValue.Has(err), "got %v", err)

	v = NewInt64(0, -2)
	a.NoError(v.SetBit(-2, 1))
	a.Equal("1 * 2^-2", v.String())
	err = v.SetBit(-3, 1)
	a.True(ErrInvalidRange.Has(err), "got %v", err)
	a.Equal("1 * 2^-2", v.String())

	// a violating write leaves the value untouched
	v = mustBounded(3, 0, 0, 8)
	err = v.SetBit(3, 1)
	a.True(ErrOutOfRange.Has(err), "got %v", err)
	a.Equal("3 * 2^0", v.String())
	a.NoError(v.SetBit(2, 1))
	a.Equal("7 * 2^0", v.String())
}

func TestSlice(t *testing.T) {
	a := assert.New(t)
	v := NewInt64(214, 0)
	tests := []struct {
		high, low int
		res       int64
	}{
		{5, 2, 5},
		{8, 0, 214},
		{5, 1, 11},
		{4, 1, 3},
		{2, 0, 2},
		{16, 8, 0},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			s, err := v.Slice(test.high, test.low)
			if a.NoError(err) {
				a.Equal(test.res, s.Int64())
			}
		})
	}

	s, err := NewInt64(214, -3).Slice(2, -1)
	a.NoError(err)
	a.Equal(int64(5), s.Int64())

	// two's complement below the masked width
	s, err = NewInt64(-2, 0).Slice(3, 0)
	a.NoError(err)
	a.Equal(int64(6), s.Int64())

	_, err = v.Slice(2, 5)
	a.True(ErrInvalidRange.Has(err), "got %v", err)
	_, err = v.Slice(5, 5)
	a.True(ErrInvalidRange.Has(err), "got %v", err)
	_, err = NewInt64(214, -3).Slice(2, -4)
	a.True(ErrInvalidRange.Has(err), "got %v", err)
}

func TestSliceFrom(t *testing.T) {
	a := assert.New(t)
	s, err := NewInt64(214, 0).SliceFrom(3)
	a.NoError(err)
	a.Equal(int64(26), s.Int64())

	// arithmetic shift keeps the sign
	s, err = NewInt64(-32, 0).SliceFrom(3)
	a.NoError(err)
	a.Equal(int64(-4), s.Int64())

	s, err = NewInt64(214, -3).SliceFrom(1)
	a.NoError(err)
	a.Equal(int64(13), s.Int64())

	_, err = NewInt64(214, -3).SliceFrom(-4)
	a.True(ErrInvalidRange.Has(err), "got %v", err)
}

func TestSetSlice(t *testing.T) {
	a := assert.New(t)
	v := NewInt64(214, 0)
	a.NoError(v.SetSlice(5, 2, big.NewInt(0)))
	a.Equal("194 * 2^0", v.String())
	a.NoError(v.SetSlice(5, 2, big.NewInt(7)))
	a.Equal("222 * 2^0", v.String())

	// negative field values sign-extend
	v = NewInt64(0, 0)
	a.NoError(v.SetSlice(3, 0, big.NewInt(-1)))
	a.Equal("-1 * 2^0", v.String())

	v = NewInt64(0, 0)
	err := v.SetSlice(3, 0, big.NewInt(8))
	a.True(ErrValueTooLarge.Has(err), "got %v", err)
	err = v.SetSlice(3, 0, big.NewInt(-9))
	a.True(ErrValueTooLarge.Has(err), "got %v", err)
	a.NoError(v.SetSlice(3, 0, big.NewInt(-8)))
	a.Equal("-8 * 2^0", v.String())

	v = NewInt64(214, -3)
	a.NoError(v.SetSlice(2, -1, big.NewInt(0)))
	a.Equal("194 * 2^-3", v.String())

	v = mustBounded(5, 0, 0, 16)
	err = v.SetSlice(5, 1, big.NewInt(15))
	a.True(ErrOutOfRange.Has(err), "got %v", err)
	a.Equal("5 * 2^0", v.String())

	err = v.SetSlice(1, 3, big.NewInt(0))
	a.True(ErrInvalidRange.Has(err), "got %v", err)
}

func TestSetSliceFrom(t *testing.T) {
	a := assert.New(t)
	v := NewInt64(11, 0)
	a.NoError(v.SetSliceFrom(2, big.NewInt(5)))
	a.Equal("23 * 2^0", v.String())

	// the low bits survive, the sign does not
	v = NewInt64(-5, 0)
	a.NoError(v.SetSliceFrom(2, big.NewInt(0)))
	a.Equal("3 * 2^0", v.String())

	v = NewInt64(3, 0)
	a.NoError(v.SetSliceFrom(2, big.NewInt(-1)))
	a.Equal("-1 * 2^0", v.String())

	v = NewInt64(3, -2)
	a.NoError(v.SetSliceFrom(0, big.NewInt(5)))
	a.Equal("23 * 2^-2", v.String())

	v = mustBounded(5, 0, 0, 16)
	err := v.SetSliceFrom(1, bi(pow99))
	a.True(ErrOutOfRange.Has(err), "got %v", err)
	a.Equal("5 * 2^0", v.String())
}

func TestBits(t *testing.T) {
	a := assert.New(t)
	v := mustBounded(-3, 0, -4, 4)
	seq, err := v.Bits()
	a.NoError(err)
	var got []bool
	for b := range seq {
		got = append(got, b)
	}
	a.Equal([]bool{true, false, true}, got)

	// the sequence restarts from the top bit
	got = got[:0]
	for b := range seq {
		got = append(got, b)
	}
	a.Equal([]bool{true, false, true}, got)

	for b := range seq {
		_ = b
		break
	}

	// mutations after the call do not leak into the sequence
	a.NoError(v.SetBit(0, 0))
	got = got[:0]
	for b := range seq {
		got = append(got, b)
	}
	a.Equal([]bool{true, false, true}, got)

	_, err = NewInt64(5, 0).Bits()
	a.True(ErrNotIterable.Has(err), "got %v", err)
	_, err = mustBounded(0, 0, 0, 1).Bits()
	a.True(ErrNotIterable.Has(err), "got %v", err)
}

func TestBitsReconstruct(t *testing.T) {
	a := assert.New(t)
	tests := []*Value{
		mustBounded(5, 0, 0, 16),
		mustBounded(0, 0, 0, 16),
		mustBounded(-3, -1, -4, 4),
		mustBounded(-8, 2, -8, 8),
		mustBounded(7, 0, -8, 8),
	}
	for i, v := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			w := v.BitWidth()
			seq, err := v.Bits()
			a.NoError(err)
			acc := new(big.Int)
			n := 0
			for b := range seq {
				acc.Lsh(acc, 1)
				if b {
					acc.SetBit(acc, 0, 1)
				}
				n++
			}
			a.Equal(w, n)
			mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
			want := new(big.Int).Mod(v.Unscaled(), mod)
			a.Equal(0, acc.Cmp(want))
		})
	}
}
