package trf

import (
	"bytes"
	"encoding/binary"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/pkg/models"
)

// RecordSize is the byte length of one binary record:
// float32 frequency, magnitude, phase, coherence, little-endian.
const RecordSize = 16

// probeOffsets are tried in order when no text data row precedes the records.
// 435057 is where the instrument's own exports put the record section.
var probeOffsets = []int{435057, 1000, 2000, 5000, 10000}

// dataRowPattern matches a still-text-encoded "freq mag phase" row
var dataRowPattern = regexp.MustCompile(`^\d+\.?\d*[\t\n\v\f\r ]+-?\d+\.?\d*[\t\n\v\f\r ]+-?\d+\.?\d*`)

// ParseBinary extracts measurement points from a binary TRF export.
// It fails only when the record section cannot be located.
func ParseBinary(buf []byte) ([]models.MeasurementPoint, error) {
	start := FindBinaryDataStart(buf)
	if start < 0 {
		return nil, apperr.New(apperr.KindUnparseableFormat, "trf.ParseBinary",
			"could not locate binary data section in TRF file")
	}

	var points []models.MeasurementPoint
	for off := start; off+RecordSize <= len(buf); off += RecordSize {
		freq := readFloat32(buf, off)
		mag := readFloat32(buf, off+4)
		phase := readFloat32(buf, off+8)
		coh := readFloat32(buf, off+12)

		if !plausibleRecord(freq, mag, phase) {
			continue
		}

		p := models.MeasurementPoint{Frequency: freq, Magnitude: mag, Phase: phase}
		if coh >= 0 && coh <= 1 {
			p.Coherence = models.Float64(coh)
		}
		points = append(points, p)
	}

	return points, nil
}

// FindBinaryDataStart returns the byte offset of the record section, or -1.
//
// The first strategy looks for a text data row and returns the summed length
// of the lines before it, each counted as decoded UTF-16 units plus one
// newline. A row on the very first line is not accepted. The second strategy
// probes fixed offsets for a plausible first record.
func FindBinaryDataStart(buf []byte) int {
	lines := splitLines(buf)

	headerEnd := -1
	for i, line := range lines {
		if dataRowPattern.Match(bytes.TrimFunc(line, isSpace)) {
			headerEnd = i
			break
		}
	}

	if headerEnd > 0 {
		offset := 0
		for _, line := range lines[:headerEnd] {
			offset += decodedLength(line) + 1
		}
		return offset
	}

	for _, start := range probeOffsets {
		if start >= len(buf)-RecordSize {
			continue
		}
		if plausibleRecord(readFloat32(buf, start), readFloat32(buf, start+4), readFloat32(buf, start+8)) {
			return start
		}
	}

	return -1
}

func plausibleRecord(freq, mag, phase float64) bool {
	return freq >= 0 && freq <= HearingLimitHz &&
		mag > -200 && mag < 200 &&
		phase > -180 && phase < 180
}

func readFloat32(buf []byte, off int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
}

// decodedLength counts the UTF-16 code units of b after lossy UTF-8 decoding,
// where each maximal invalid subsequence becomes a single U+FFFD. Offsets in
// existing binary files were computed this way, so byte counts would drift on
// lines containing non-ASCII data.
func decodedLength(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			if r > 0xFFFF {
				n += 2
			} else {
				n++
			}
			i += size
			continue
		}
		i += invalidPrefixLen(b[i:])
		n++
	}
	return n
}

// invalidPrefixLen returns how many bytes one replacement character covers:
// the lead byte plus any continuation bytes that were valid so far.
func invalidPrefixLen(b []byte) int {
	lead := b[0]
	var need int
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead >= 0xE0 && lead <= 0xEF:
		need = 2
		if lead == 0xE0 {
			lo = 0xA0
		} else if lead == 0xED {
			hi = 0x9F
		}
	case lead >= 0xF0 && lead <= 0xF4:
		need = 3
		if lead == 0xF0 {
			lo = 0x90
		} else if lead == 0xF4 {
			hi = 0x8F
		}
	default:
		return 1
	}

	consumed := 1
	for k := 0; k < need && consumed < len(b); k++ {
		c := b[consumed]
		if c < lo || c > hi {
			break
		}
		lo, hi = 0x80, 0xBF
		consumed++
	}
	return consumed
}
