package trf

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// titleMarkers identify instrument banner lines such as "TTA DM3 10-9"
var titleMarkers = []string{"TTA", "DM3"}

// ParseText extracts measurement points from a text TRF export.
//
// Rows are kept in input order. A row needs three finite leading columns;
// anything else is dropped. The result may be empty.
func ParseText(buf []byte) []models.MeasurementPoint {
	var (
		points       []models.MeasurementPoint
		inData       bool
		headerFound  bool
		hasCoherence bool
	)

	for _, raw := range splitLines(buf) {
		line := strings.TrimFunc(string(raw), isSpace)
		if line == "" || isTitleLine(line) {
			continue
		}

		if !headerFound {
			lower := strings.ToLower(line)
			if strings.Contains(lower, "freq") {
				headerFound = true
				inData = true
				hasCoherence = strings.Contains(lower, "coherence")
				continue
			}
		}

		if !inData && isNumericLine(line) {
			inData = true
		}
		if !inData {
			continue
		}

		if p, ok := parseRow(strings.FieldsFunc(line, isSpace), hasCoherence); ok {
			points = append(points, p)
		}
	}

	return points
}

func parseRow(fields []string, hasCoherence bool) (models.MeasurementPoint, bool) {
	if len(fields) < 3 {
		return models.MeasurementPoint{}, false
	}

	freq, ok1 := parseFinite(fields[0])
	mag, ok2 := parseFinite(fields[1])
	phase, ok3 := parseFinite(fields[2])
	if !ok1 || !ok2 || !ok3 {
		return models.MeasurementPoint{}, false
	}

	p := models.MeasurementPoint{Frequency: freq, Magnitude: mag, Phase: phase}
	if hasCoherence && len(fields) >= 4 {
		if c, ok := parseFinite(fields[3]); ok && c >= 0 && c <= 1 {
			p.Coherence = models.Float64(c)
		}
	}
	return p, true
}

func isTitleLine(line string) bool {
	for _, marker := range titleMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func isNumericLine(line string) bool {
	fields := strings.FieldsFunc(line, isSpace)
	if len(fields) == 0 {
		return false
	}
	_, ok := parseFinite(fields[0])
	return ok
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isSpace treats a byte order mark as whitespace alongside unicode.IsSpace
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// splitLines splits on \n and drops one trailing \r from each line
func splitLines(buf []byte) [][]byte {
	lines := bytes.Split(buf, []byte("\n"))
	for i, l := range lines {
		lines[i] = bytes.TrimSuffix(l, []byte("\r"))
	}
	return lines
}
