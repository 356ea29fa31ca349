package trf

import (
	"bytes"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// binaryMagic marks instrument binary exports
var binaryMagic = []byte("JACKREF")

const detectWindow = 10000

// DetectFormat classifies buf as a binary or text TRF source. A buffer is
// binary only when it carries the JACKREF token and more than half of its
// first 10000 bytes are non-printable.
func DetectFormat(buf []byte) models.SourceFormat {
	if !bytes.Contains(buf, binaryMagic) {
		return models.FormatText
	}

	n := min(len(buf), detectWindow)
	nonPrintable := 0
	for _, b := range buf[:n] {
		if b < 32 || b > 126 {
			nonPrintable++
		}
	}

	if float64(nonPrintable)/float64(n) > 0.5 {
		return models.FormatBinary
	}
	return models.FormatText
}
