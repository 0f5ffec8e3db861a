// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"strucfeat-core/feature"
	"strucfeat-core/interact"
	"strucfeat-core/model"
	"strucfeat-core/spatial"

	"strucfeat/internal/source"
)

// Config controls the featurization pipeline. Thresholds, Window and
// Supported are invariant across the whole batch.
type Config struct {
	Threads    int // number of worker goroutines (>=1)
	Thresholds interact.Thresholds
	Window     feature.WindowConfig
	Supported  map[string]bool
}

// Stats is the per-batch diagnostic summary.
type Stats struct {
	Processed       int
	Skipped         int
	DroppedResidues int
}

// WarnFunc receives per-structure diagnostics (skips, drop counts).
type WarnFunc func(format string, a ...any)

// ForEachRecord featurizes each source on a worker pool and streams the
// assembled records to visit. Records of one structure arrive contiguously
// and in residue order; the interleaving of structures follows completion
// order (use the writers' sort for batch-deterministic output). The first
// error from visit (or ctx) stops the run; per-structure failures only skip.
func ForEachRecord(
	ctx context.Context,
	cfg Config,
	sources []source.Source,
	visit func(feature.Record) error,
	warn WarnFunc,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if warn == nil {
		warn = func(string, ...any) {}
	}

	type result struct {
		id      string
		records []feature.Record
		dropped int
		err     error
	}
	jobs := make(chan source.Source, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case src, ok := <-jobs:
					if !ok {
						return
					}
					recs, dropped, err := featurize(src, cfg)
					select {
					case results <- result{id: src.ID(), records: recs, dropped: dropped, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		stats Stats
		cerr  error
		cwg   sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if r.err != nil {
				stats.Skipped++
				warn("skipping %s: %v", r.id, r.err)
				continue
			}
			stats.Processed++
			stats.DroppedResidues += r.dropped
			if r.dropped > 0 {
				warn("%s: dropped %d unsupported residue(s)", r.id, r.dropped)
			}
			if cerr != nil {
				continue
			}
			for _, rec := range r.records {
				if err := visit(rec); err != nil {
					cerr = err
					break
				}
			}
		}
	}()

	// Feed work
feed:
	for _, src := range sources {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- src:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, cerr
}

// featurize runs the sequential per-structure stages:
// load → adapt → index → detect → assemble.
func featurize(src source.Source, cfg Config) ([]feature.Record, int, error) {
	raw, err := src.Load()
	if err != nil {
		return nil, 0, err
	}
	st, astats, err := model.Adapt(raw, cfg.Supported)
	if err != nil {
		return nil, 0, err
	}
	idx, err := spatial.BuildStructure(st)
	if err != nil {
		return nil, 0, err
	}
	ints := interact.Detect(st, idx, cfg.Thresholds)
	recs, err := feature.Assemble(st, feature.ChainGeometry(st), ints, cfg.Window)
	if err != nil {
		return nil, 0, err
	}
	return recs, astats.DroppedResidues, nil
}
