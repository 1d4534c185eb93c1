package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series whose
// length is a power of two (use PadPow2 first).
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}
	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := FFT(even)
	fo := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = fe[k] + w*fo[k]
		result[k+n/2] = fe[k] - w*fo[k]
	}
	return result
}

// PadPow2 zero-pads the series to the next power-of-two length.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the first half of the FFT.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(PadPow2(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the peak of the power spectrum (skipping
// the DC bin) in cycles per sample. For an energy log driven by a
// modulation of period P frames this lands near 1/P.
func DominantFrequency(data []float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	maxIdx, maxVal := 1, ps[1]
	for i := 2; i < len(ps); i++ {
		if ps[i] > maxVal {
			maxIdx, maxVal = i, ps[i]
		}
	}
	n := 1
	for n < len(data) {
		n *= 2
	}
	return float64(maxIdx) / float64(n)
}
