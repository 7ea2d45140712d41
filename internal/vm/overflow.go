package vm

import "math/big"

// intBounds returns the inclusive [min, max] range representable by a
// width-bit integer, signed or unsigned. Grounded on the teacher's
// overflow.go/width_checks.go fixed-width range checks, generalized from
// int64-only bounds to arbitrary width via math/big since Thresh's sized
// integers go up to 64 bits today but the comptime evaluator otherwise
// works in arbitrary precision throughout.
func intBounds(width uint8, signed bool) (min, max *big.Int) {
	if width == 0 {
		width = 64
	}
	bits := big.NewInt(1)
	bits.Lsh(bits, uint(width))
	if !signed {
		max = new(big.Int).Sub(bits, big.NewInt(1))
		return big.NewInt(0), max
	}
	half := new(big.Int).Rsh(bits, 1)
	max = new(big.Int).Sub(half, big.NewInt(1))
	min = new(big.Int).Neg(half)
	return min, max
}

// fitsWidth reports whether v lies within width's representable range.
func fitsWidth(v *big.Int, width uint8, signed bool) bool {
	return FitsWidth(v, width, signed)
}

// FitsWidth reports whether v lies within width's representable range.
// Exported so internal/sema can bounds-check a comptime_int literal being
// narrowed to a sized integer type without going through a full Eval.
func FitsWidth(v *big.Int, width uint8, signed bool) bool {
	min, max := intBounds(width, signed)
	return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
}

// wrapToWidth reduces v modulo 2^width and re-centers it into the signed
// or unsigned range, implementing the two's-complement wraparound that
// Thresh's `+%`/`-%`/`*%`/`<<%` operators request explicitly.
func wrapToWidth(v *big.Int, width uint8, signed bool) *big.Int {
	if width == 0 {
		width = 64
	}
	modulus := big.NewInt(1)
	modulus.Lsh(modulus, uint(width))
	r := new(big.Int).Mod(v, modulus) // Mod result is always in [0, modulus)
	if signed {
		half := new(big.Int).Rsh(modulus, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, modulus)
		}
	}
	return r
}

// addChecked, subChecked, mulChecked return (result, ok); ok is false when
// the exact mathematical result does not fit width.
func addChecked(a, b *big.Int, width uint8, signed bool) (*big.Int, bool) {
	r := new(big.Int).Add(a, b)
	return r, fitsWidth(r, width, signed)
}

func subChecked(a, b *big.Int, width uint8, signed bool) (*big.Int, bool) {
	r := new(big.Int).Sub(a, b)
	return r, fitsWidth(r, width, signed)
}

func mulChecked(a, b *big.Int, width uint8, signed bool) (*big.Int, bool) {
	r := new(big.Int).Mul(a, b)
	return r, fitsWidth(r, width, signed)
}
