// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/heic-to-jpeg/internal/source"
	"github.com/pdiddy/heic-to-jpeg/pkg/types"
)

// FileResult is the outcome of one attempted source file.
type FileResult struct {
	Source      string
	Destination string
	Status      types.ConversionStatus
	Err         error
}

// BatchResult holds the outcome of a batch conversion run. Results contains
// only attempted files, in discovery order.
type BatchResult struct {
	Results    []FileResult
	Discovered int
	Converted  int
	Skipped    int
	Failed     int
}

// Total returns the number of files attempted.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Outcome classifies the run for exit-code purposes.
func (r BatchResult) Outcome() types.Outcome {
	switch {
	case r.Discovered == 0:
		return types.OutcomeNoInput
	case r.Converted > 0:
		return types.OutcomeConverted
	default:
		return types.OutcomeNoneConverted
	}
}

// Run discovers sources under cfg.Input and converts them with ConvertBatch.
// An input with nothing to convert yields a result with OutcomeNoInput.
func (c *Converter) Run(ctx context.Context, cfg types.ConversionConfig, w io.Writer) BatchResult {
	return c.ConvertBatch(ctx, source.Discover(cfg.Input, cfg.Recursive), cfg, w)
}

// ConvertBatch converts sources, printing per-file status to w and returning
// a summary. Nothing is printed for an empty list. One file's failure never
// stops the others. With cfg.Jobs > 1 files are converted concurrently;
// sources that share a destination are still handled one after another in
// list order. Cancelling ctx stops new files from starting.
func (c *Converter) ConvertBatch(ctx context.Context, sources []string, cfg types.ConversionConfig, w io.Writer) BatchResult {
	results := make([]FileResult, len(sources))
	out := &statusWriter{w: w}

	convertAt := func(i int) {
		results[i] = c.convertOne(sources[i], cfg)
		out.file(results[i])
	}

	if cfg.Jobs <= 1 {
		for i := range sources {
			if ctx.Err() != nil {
				break
			}
			convertAt(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.Jobs)
		for _, chain := range chainByDestination(sources, cfg.OutputDir) {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				for _, i := range chain {
					if ctx.Err() != nil {
						return nil
					}
					convertAt(i)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	result := BatchResult{Discovered: len(sources)}
	for _, r := range results {
		switch r.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		default:
			continue
		}
		result.Results = append(result.Results, r)
	}

	out.summary(result)
	return result
}

// convertOne converts a single source and classifies the outcome.
func (c *Converter) convertOne(src string, cfg types.ConversionConfig) FileResult {
	res := FileResult{
		Source:      src,
		Destination: source.Destination(src, cfg.OutputDir),
	}
	_, err := c.Convert(Request{
		Source:      res.Source,
		Destination: res.Destination,
		Quality:     cfg.Quality,
		Overwrite:   cfg.Overwrite,
	})
	switch {
	case err == nil:
		res.Status = types.ConversionDone
	case errors.Is(err, ErrAlreadyExists):
		res.Status = types.ConversionSkipped
	default:
		res.Status = types.ConversionFailed
	}
	res.Err = err
	return res
}

// chainByDestination groups source indices by derived destination. Chains
// are ordered by their first index and each chain keeps list order.
func chainByDestination(sources []string, outputDir string) [][]int {
	var chains [][]int
	byDest := make(map[string]int, len(sources))
	for i, src := range sources {
		dst := source.Destination(src, outputDir)
		if n, ok := byDest[dst]; ok {
			chains[n] = append(chains[n], i)
			continue
		}
		byDest[dst] = len(chains)
		chains = append(chains, []int{i})
	}
	return chains
}

// statusWriter serializes status lines from concurrent workers.
type statusWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *statusWriter) file(r FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Status {
	case types.ConversionDone:
		fmt.Fprintf(s.w, "converted: %s -> %s\n", r.Source, r.Destination)
	case types.ConversionSkipped:
		fmt.Fprintf(s.w, "skipped: %s (already exists)\n", r.Destination)
	case types.ConversionFailed:
		fmt.Fprintf(s.w, "failed:  %s (%v)\n", r.Source, r.Err)
	}
}

func (s *statusWriter) summary(r BatchResult) {
	if r.Discovered == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if pending := r.Discovered - r.Total(); pending > 0 {
		fmt.Fprintf(s.w, "interrupted: %d file(s) not attempted\n", pending)
	}
	fmt.Fprintf(s.w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Skipped, r.Failed, r.Total())
	fmt.Fprintf(s.w, "Done. Converted %d file(s).\n", r.Converted)
}
