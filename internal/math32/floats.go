// Package math32 provides float32 helpers for complex-valued sample streams.
// This is an internal package - external users should use the kernel package.
package math32

// MagSq returns the squared magnitude of z.
//
// Thresholds in this module are compared against squared magnitudes to avoid
// a square root per sample, so this is the only magnitude the hot paths need.
func MagSq(z complex64) float32 {
	re := real(z)
	im := imag(z)
	return re*re + im*im
}

// MagSqInto writes the squared magnitude of every sample in src into dst.
// dst and src must have equal length.
func MagSqInto(dst []float32, src []complex64) {
	magSqInto(dst, src)
}

func magSqIntoGeneric(dst []float32, src []complex64) {
	for i, z := range src {
		re := real(z)
		im := imag(z)
		dst[i] = re*re + im*im
	}
}

// magSqIntoUnrolled processes four samples per iteration. The independent
// lanes let the compiler keep the partial products in registers.
func magSqIntoUnrolled(dst []float32, src []complex64) {
	i := 0
	for ; i+4 <= len(src); i += 4 {
		z0, z1, z2, z3 := src[i], src[i+1], src[i+2], src[i+3]
		dst[i] = real(z0)*real(z0) + imag(z0)*imag(z0)
		dst[i+1] = real(z1)*real(z1) + imag(z1)*imag(z1)
		dst[i+2] = real(z2)*real(z2) + imag(z2)*imag(z2)
		dst[i+3] = real(z3)*real(z3) + imag(z3)*imag(z3)
	}
	for ; i < len(src); i++ {
		z := src[i]
		dst[i] = real(z)*real(z) + imag(z)*imag(z)
	}
}

// ArgMaxMagSq returns the index and squared magnitude of the sample with the
// largest squared magnitude in zs, scanning left to right. Returns (-1, 0)
// for an empty slice.
func ArgMaxMagSq(zs []complex64) (int, float32) {
	best := -1
	var bestVal float32
	for i, z := range zs {
		re := real(z)
		im := imag(z)
		v := re*re + im*im
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	return best, bestVal
}
