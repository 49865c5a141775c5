// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus is the per-file result of a conversion attempt.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Outcome summarizes a whole run so the CLI can map it to an exit code.
type Outcome int

const (
	// OutcomeConverted means at least one file was converted.
	OutcomeConverted Outcome = iota
	// OutcomeNoneConverted means sources were found but every one was
	// skipped or failed.
	OutcomeNoneConverted
	// OutcomeNoInput means discovery found no HEIC/HEIF files.
	OutcomeNoInput
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeNoneConverted:
		return "none-converted"
	case OutcomeNoInput:
		return "no-input"
	}
	return "unknown"
}
