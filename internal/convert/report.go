// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/heic-to-jpeg/pkg/types"
)

// Report is the serialized form of a BatchResult.
type Report struct {
	Discovered int           `json:"discovered" yaml:"discovered"`
	Converted  int           `json:"converted" yaml:"converted"`
	Skipped    int           `json:"skipped" yaml:"skipped"`
	Failed     int           `json:"failed" yaml:"failed"`
	Outcome    string        `json:"outcome" yaml:"outcome"`
	Files      []ReportEntry `json:"files" yaml:"files"`
}

// ReportEntry is one file in a Report.
type ReportEntry struct {
	Source      string                 `json:"source" yaml:"source"`
	Destination string                 `json:"destination" yaml:"destination"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport builds a Report from r.
func NewReport(r BatchResult) Report {
	rep := Report{
		Discovered: r.Discovered,
		Converted:  r.Converted,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		Files:      make([]ReportEntry, 0, len(r.Results)),
		Outcome:    r.Outcome().String(),
	}
	for _, f := range r.Results {
		e := ReportEntry{
			Source:      f.Source,
			Destination: f.Destination,
			Status:      f.Status,
		}
		if f.Err != nil {
			e.Error = f.Err.Error()
		}
		rep.Files = append(rep.Files, e)
	}
	return rep
}

// WriteYAML writes r to w as a single YAML document.
func WriteYAML(w io.Writer, r BatchResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(r)); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}
