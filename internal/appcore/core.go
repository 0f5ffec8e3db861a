// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"strucfeat-core/feature"
	"strucfeat-core/interact"

	"strucfeat/internal/cmdutil"
	"strucfeat/internal/pipeline"
	"strucfeat/internal/runutil"
	"strucfeat/internal/source"
	"strucfeat/internal/writers"
)

type Options struct {
	ContactRadius float64
	HBondDistMax  float64
	HBondAngleMin float64

	MaxPartners  int
	Padding      string
	ResidueTypes string

	Threads int

	Quiet            bool
	NoRecordExitCode int
}

type VisitorFunc[T any] func(feature.Record) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	sources []source.Source,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	window := feature.WindowConfig{MaxPartners: o.MaxPartners, Padding: o.Padding}
	if err := window.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if len(sources) == 0 {
		fmt.Fprintln(stderr, "error: no structures to process")
		return 2
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, stats, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{
			Threads:    thr,
			Thresholds: interact.Thresholds{ContactRadius: o.ContactRadius, HBondDistMax: o.HBondDistMax, HBondAngleMin: o.HBondAngleMin},
			Window:     window,
			Supported:  runutil.ParseResidueTypes(o.ResidueTypes),
		},
		sources,
		visit,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(format string, a ...any) {
			cmdutil.Warnf(stderr, o.Quiet, format, a...)
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if !o.Quiet {
		fmt.Fprintf(stderr, "processed %d structure(s), skipped %d, dropped %d residue(s), wrote %d record(s)\n",
			stats.Processed, stats.Skipped, stats.DroppedResidues, total)
	}
	if total == 0 {
		return o.NoRecordExitCode
	}
	return 0
}
