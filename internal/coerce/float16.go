package coerce

import "math"

// Float16FromBits expands an IEEE 754 binary16 bit pattern to float32.
// The conversion is exact: every half value is representable in single
// precision.
func Float16FromBits(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h >> 10 & 0x1f)
	frac := uint32(h & 0x3ff)

	switch {
	case exp == 0:
		if frac == 0 {
			return math.Float32frombits(sign) // signed zero
		}
		// Subnormal half: renormalize into the float32 exponent range.
		e := uint32(113)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		return math.Float32frombits(sign | e<<23 | frac<<13)
	case exp == 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | frac<<13) // Inf/NaN
	default:
		return math.Float32frombits(sign | (exp+112)<<23 | frac<<13)
	}
}

// Float16Bits rounds a float32 to the nearest IEEE 754 binary16 bit
// pattern (round to nearest, ties away from zero). It reports false
// when a finite input overflows the half range.
func Float16Bits(f float32) (uint16, bool) {
	b := math.Float32bits(f)
	sign := uint16(b >> 16 & 0x8000)
	exp := b >> 23 & 0xff
	frac := b & 0x7fffff

	if exp == 0xff {
		if frac != 0 {
			// NaN: keep the top payload bits so half NaNs survive a
			// decode/encode round trip; force quiet if they vanish.
			h := sign | 0x7c00 | uint16(frac>>13)
			if h&0x3ff == 0 {
				h |= 0x200
			}
			return h, true
		}
		return sign | 0x7c00, true // Inf
	}

	e := int32(exp) - 127 + 15
	switch {
	case e >= 0x1f:
		return sign | 0x7c00, false // finite overflow
	case e <= 0:
		if e < -10 {
			return sign, true // underflows to signed zero
		}
		frac |= 0x800000
		shift := uint32(14 - e)
		half := uint16(frac >> shift)
		if frac>>(shift-1)&1 != 0 {
			half++
		}
		return sign | half, true
	default:
		half := uint16(e)<<10 | uint16(frac>>13)
		if frac&0x1000 != 0 {
			half++ // carry into the exponent is correct rounding
		}
		if half&0x7c00 == 0x7c00 {
			return sign | 0x7c00, false // rounding carried a finite value to Inf
		}
		return sign | half, true
	}
}
