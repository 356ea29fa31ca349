// Package export renders FIR coefficients in the encodings accepted by
// common DSP tools.
package export

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Export formats
const (
	FormatText    = "text"
	FormatCSV     = "csv"
	FormatMatlab  = "matlab"
	FormatPython  = "python"
	FormatHighRes = "high-res"
)

// Formats lists the supported export formats
var Formats = []string{FormatText, FormatCSV, FormatMatlab, FormatPython, FormatHighRes}

// DefaultSampleRate is written in the high-res header when none is given
const DefaultSampleRate = 48000.0

// Format renders coeffs in the given format. Non-finite coefficients are
// written as zero and unknown formats fall back to text.
func Format(coeffs []float64, format string, sampleRate float64) string {
	clean := sanitize(coeffs)

	switch format {
	case FormatCSV:
		return strings.Join(fixed(clean, 6), ",")
	case FormatMatlab:
		return "% FIR Filter Coefficients\ncoefficients = [" + strings.Join(fixed(clean, 6), ", ") + "];"
	case FormatPython:
		return "# FIR Filter Coefficients\ncoefficients = [" + strings.Join(fixed(clean, 6), ", ") + "]"
	case FormatHighRes:
		return highRes(clean, sampleRate)
	default:
		return strings.Join(fixed(clean, 6), "\n")
	}
}

// FileExtension returns the file extension (without dot) for format
func FileExtension(format string) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatMatlab:
		return "m"
	case FormatPython:
		return "py"
	default:
		return "txt"
	}
}

// ContentType returns the MIME type stored alongside a persisted export
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "text/plain"
}

// IsSupported reports whether format is one of Formats
func IsSupported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func highRes(coeffs []float64, sampleRate float64) string {
	if !(sampleRate > 0) {
		sampleRate = DefaultSampleRate
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/* Fs(Hz)=   %.4fK */\n", sampleRate/1000)
	b.WriteString("/* Coef Line Format= Index & Coef */\n")
	for i, c := range fixed(coeffs, 15) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d, %s", i, c)
	}
	return b.String()
}

func sanitize(coeffs []float64) []float64 {
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		// c == 0 also folds negative zero
		if math.IsNaN(c) || math.IsInf(c, 0) || c == 0 {
			continue
		}
		out[i] = c
	}
	return out
}

func fixed(values []float64, decimals int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = toFixed(v, decimals)
	}
	return out
}

// toFixed formats a finite v with the given decimals, rounding exact ties
// away from zero on the binary value.
func toFixed(v float64, decimals int) string {
	scaled := new(big.Rat).SetFloat64(math.Abs(v))
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	scaled.Mul(scaled, new(big.Rat).SetInt(pow))

	n, rem := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(scaled.Denom()) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	out := digits
	if decimals > 0 {
		cut := len(digits) - decimals
		out = digits[:cut] + "." + digits[cut:]
	}
	if v < 0 {
		out = "-" + out
	}
	return out
}
