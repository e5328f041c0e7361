// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one input through source → effects → encoder →
// assembler, isolating failures per input so a batch always runs to the
// end. See docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/scandoc/internal/assemble"
	"github.com/pdiddy/scandoc/internal/effect"
	"github.com/pdiddy/scandoc/internal/encode"
	"github.com/pdiddy/scandoc/internal/source"
	"github.com/pdiddy/scandoc/pkg/types"
)

// openSource resolves a descriptor to its page source. Tests swap this to
// inject fake sources.
var openSource = func(desc types.InputDescriptor) (source.PageSource, error) {
	return source.Open(desc)
}

// Options controls batch execution.
type Options struct {
	// Jobs is the number of inputs processed concurrently. Values below 2
	// mean sequential. Inputs share no state, so concurrency needs no
	// locking in the pipeline itself.
	Jobs int

	// ReportPath, when set, is where the YAML batch report is written.
	ReportPath string
}

// BatchResult summarizes one batch run.
type BatchResult struct {
	Results   []types.Result
	Converted int
	Failed    int
	Pages     int
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Process runs one input through the full pipeline and returns its result.
// On any page-level failure the input's document is abandoned: no partial
// output file is left behind, and the error is classified for the caller.
// Per-input status lines go to w.
func Process(desc types.InputDescriptor, cfg types.EffectConfig, w io.Writer) types.Result {
	res := types.Result{Input: desc}

	src, err := openSource(desc)
	if err != nil {
		res.Err = err
		fmt.Fprintf(w, "failed:  %s (%v)\n", desc, err)
		return res
	}
	defer src.Close()

	// Pages are transformed and encoded one at a time; only the compressed
	// pages accumulate until assembly.
	var pages []*encode.EncodedPage
	for pageNum := 1; ; pageNum++ {
		raster, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Err = err
			fmt.Fprintf(w, "failed:  %s (%v)\n", desc, err)
			return res
		}

		transformed, err := effect.Apply(raster, cfg)
		if err != nil {
			res.Err = fmt.Errorf("page %d: %w", pageNum, err)
			fmt.Fprintf(w, "failed:  %s (%v)\n", desc, res.Err)
			return res
		}

		encoded, err := encode.Encode(transformed, cfg.Quality)
		if err != nil {
			res.Err = fmt.Errorf("page %d: %w", pageNum, err)
			fmt.Fprintf(w, "failed:  %s (%v)\n", desc, res.Err)
			return res
		}
		pages = append(pages, encoded)
	}

	if len(pages) == 0 {
		res.Err = fmt.Errorf("%w: %s has no pages", types.ErrUnreadableSource, desc)
		fmt.Fprintf(w, "failed:  %s (%v)\n", desc, res.Err)
		return res
	}

	outPath := desc.OutputPath()
	if err := assemble.Write(pages, outPath); err != nil {
		res.Err = err
		fmt.Fprintf(w, "failed:  %s (%v)\n", desc, err)
		return res
	}

	res.OutputPath = outPath
	res.Pages = len(pages)
	fmt.Fprintf(w, "wrote: %s (%d pages, %s)\n", outPath, res.Pages, fileSize(outPath))
	return res
}

// Run processes a batch of inputs. Failures are per-input and never abort
// the batch; results keep the order of descs regardless of concurrency.
func Run(descs []types.InputDescriptor, cfg types.EffectConfig, opts Options, w io.Writer) BatchResult {
	results := make([]types.Result, len(descs))

	if opts.Jobs > 1 {
		var mu sync.Mutex
		var g errgroup.Group
		g.SetLimit(opts.Jobs)
		for i, desc := range descs {
			g.Go(func() error {
				var buf bytes.Buffer
				results[i] = Process(desc, cfg, &buf)
				mu.Lock()
				w.Write(buf.Bytes())
				mu.Unlock()
				return nil
			})
		}
		g.Wait()
	} else {
		for i, desc := range descs {
			results[i] = Process(desc, cfg, w)
		}
	}

	batch := BatchResult{Results: results}
	for _, r := range results {
		if r.OK() {
			batch.Converted++
			batch.Pages += r.Pages
		} else {
			batch.Failed++
		}
	}

	if opts.ReportPath != "" {
		if err := WriteReport(opts.ReportPath, cfg, batch); err != nil {
			fmt.Fprintf(w, "warning: writing report: %v\n", err)
		}
	}
	return batch
}
