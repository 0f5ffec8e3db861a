package cmdutil

import (
	"context"

	"strucfeat-core/feature"

	"strucfeat/internal/pipeline"
	"strucfeat/internal/source"
)

// RunStream runs the shared pipeline, applies a visitor, and streams results via send.
// It returns the number of kept records, the batch stats, and the first error
// encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	sources []source.Source,
	visit func(feature.Record) (bool, T, error),
	send func(T) error,
	warn pipeline.WarnFunc,
) (int, pipeline.Stats, error) {
	total := 0
	stats, err := pipeline.ForEachRecord(ctx, cfg, sources, func(r feature.Record) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	}, warn)
	return total, stats, err
}
