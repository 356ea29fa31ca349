// Package trf reads acoustic transfer-function measurement files.
//
// Two variants exist: a line-oriented text export with optional title and
// header lines, and a binary export carrying the JACKREF token followed by a
// section of 16-byte little-endian float32 records. Parse detects the variant,
// extracts the measurement points, enforces the 22 kHz hearing limit and
// returns a models.MeasurementSet. Nothing in this package performs I/O except
// ReadFile.
package trf
