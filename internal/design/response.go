package design

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// ResponsePoints is the number of frequencies the verifier samples
const ResponsePoints = 1024

// FrequencyResponse evaluates the DTFT of coeffs at ResponsePoints equally
// spaced frequencies from 0 up to (but excluding) Nyquist. Magnitude is in
// dB and phase in degrees.
//
// The transform is computed directly, O(taps*ResponsePoints); it runs once
// per design.
func FrequencyResponse(coeffs []float64, sampleRate float64) []models.ResponsePoint {
	nyquist := sampleRate / 2
	re := make([]float64, ResponsePoints)
	im := make([]float64, ResponsePoints)

	for i := range re {
		fNorm := float64(i) / ResponsePoints
		var sumRe, sumIm float64
		for j, c := range coeffs {
			phase := -2 * math.Pi * fNorm * float64(j)
			sumRe += c * math.Cos(phase)
			sumIm += c * math.Sin(phase)
		}
		re[i], im[i] = sumRe, sumIm
	}

	mag := make([]float64, ResponsePoints)
	vecmath.Magnitude(mag, re, im)

	out := make([]models.ResponsePoint, ResponsePoints)
	for i := range out {
		out[i] = models.ResponsePoint{
			Frequency: float64(i) / ResponsePoints * nyquist,
			Magnitude: 20 * math.Log10(mag[i]),
			Phase:     math.Atan2(im[i], re[i]) * 180 / math.Pi,
		}
	}
	return out
}
