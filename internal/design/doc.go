// Package design turns a measurement set into FIR filter coefficients and
// verifies the response the coefficients actually produce.
//
// Synthesis is the window method: an ideal lowpass sinc truncated to the
// requested tap count and tapered with a Hamming window. An optional
// frequency range restricts which measurement points enter the design.
package design
