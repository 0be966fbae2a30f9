package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a real series of any
// length.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns |X_k| for the first half of the spectrum of data.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod returns the period of the strongest non-constant component
// of a series sampled every interval time units.
func DominantPeriod(series []float64, interval float64) (float64, error) {
	if len(series) < 4 {
		return 0, errors.New("analysis: series too short for spectral analysis")
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	// peaks below 1e-9 per sample are rounding noise
	if maxIdx == 0 || maxPower < 1e-9*float64(len(series)) {
		return 0, errors.New("analysis: series has no periodic component")
	}

	return float64(len(series)) * interval / float64(maxIdx), nil
}
