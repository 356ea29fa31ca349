package trf

import (
	"bytes"
	"testing"

	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want models.SourceFormat
	}{
		{
			name: "empty buffer",
			buf:  nil,
			want: models.FormatText,
		},
		{
			name: "plain text export",
			buf:  []byte("Frequency (Hz) Magnitude Phase\n100 -3 10\n"),
			want: models.FormatText,
		},
		{
			name: "magic token in printable file",
			buf:  []byte("JACKREF export\n100 -3 10\n200 -2 5\n"),
			want: models.FormatText,
		},
		{
			name: "binary content without magic token",
			buf:  make([]byte, 2048),
			want: models.FormatText,
		},
		{
			name: "magic token with binary payload",
			buf:  append([]byte("JACKREF"), make([]byte, 500)...),
			want: models.FormatBinary,
		},
		{
			name: "exactly half non-printable stays text",
			buf:  append([]byte("JACKREFxxx"), make([]byte, 10)...),
			want: models.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.buf))
		})
	}
}

func TestDetectFormatOnlyLooksAtFirstWindow(t *testing.T) {
	// Printable head followed by a large binary tail: the ratio over the
	// first 10000 bytes decides.
	buf := append([]byte("JACKREF"), bytes.Repeat([]byte("a"), detectWindow)...)
	buf = append(buf, make([]byte, 50000)...)

	assert.Equal(t, models.FormatText, DetectFormat(buf))
	assert.Equal(t, DetectFormat(buf), DetectFormat(buf))
}
