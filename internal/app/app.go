// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"strucfeat-core/feature"

	"strucfeat/internal/appcore"
	"strucfeat/internal/cli"
	"strucfeat/internal/cmdutil"
	"strucfeat/internal/source"
	"strucfeat/internal/version"
	"strucfeat/internal/visitors"
	"strucfeat/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("strucfeat")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "strucfeat version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	var sources []source.Source
	for _, f := range opts.Structures {
		sources = append(sources, source.PDBFile{Path: f, Chain: opts.Chain})
	}
	if opts.ListFile != "" {
		listed, warns, lerr := source.FromList(opts.ListFile, opts.Path)
		if lerr != nil {
			_, _ = fmt.Fprintln(stderr, lerr)
			return 2
		}
		for _, w := range warns {
			cmdutil.Warnf(stderr, opts.Quiet, "%s", w)
		}
		sources = append(sources, listed...)
	}

	coreOpts := appcore.Options{
		ContactRadius:    opts.ContactRadius,
		HBondDistMax:     opts.HBondDistMax,
		HBondAngleMin:    opts.HBondAngleMin,
		MaxPartners:      opts.MaxPartners,
		Padding:          opts.Padding,
		ResidueTypes:     opts.ResidueTypes,
		Threads:          opts.Threads,
		Quiet:            opts.Quiet,
		NoRecordExitCode: opts.NoRecordExitCode,
	}
	writer := appcore.NewFeatureWriterFactory(opts.Output, opts.Sort, opts.Header, opts.MaxPartners)
	return appcore.Run[feature.Record](parent, stdout, stderr, coreOpts, sources, visitors.PassThrough{}.Visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
