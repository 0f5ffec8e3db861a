// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"strucfeat/internal/cliutil"
	"strucfeat/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Structure input
	Structures []string
	Chain      string
	ListFile   string
	Path       string

	// Geometric thresholds
	ContactRadius float64
	HBondDistMax  float64
	HBondAngleMin float64

	// Window layout
	MaxPartners  int
	Padding      string
	ResidueTypes string

	// Performance
	Threads int

	// Output
	Output string
	Sort   bool
	Header bool // true unless --no-header

	Quiet            bool
	NoRecordExitCode int
	Version          bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}
		fmt.Fprintf(out, "%s: structure featurization for geometry-model training\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		fmt.Fprintln(out, "Input:")
		fmt.Fprintln(out, "  -i, --structures file       PDB file(s) to featurize (repeatable) [*]")
		fmt.Fprintln(out, "  -c, --chain string          Restrict --structures input to one chain")
		fmt.Fprintln(out, "  -l, --list file             File with structure IDs, one per line (1abc or 1abcA)")
		fmt.Fprintf(out, "  -p, --path dir              Folder searched for listed structures [%s]\n", def("path"))
		fmt.Fprintln(out, "  Positional arguments are taken as structure files; globs are expanded.")

		fmt.Fprintln(out, "\nThresholds:")
		fmt.Fprintf(out, "      --contact-radius float  Contact cutoff, Å, inclusive [%s]\n", def("contact-radius"))
		fmt.Fprintf(out, "      --hbond-dist-max float  Donor-acceptor N...O cutoff, Å [%s]\n", def("hbond-dist-max"))
		fmt.Fprintf(out, "      --hbond-angle-min float Donor angle minimum, degrees [%s]\n", def("hbond-angle-min"))

		fmt.Fprintln(out, "\nWindow:")
		fmt.Fprintf(out, "      --max-partners int      Interaction partners kept per residue [%s]\n", def("max-partners"))
		fmt.Fprintf(out, "      --padding string        Window policy: pad-sentinel | report-count [%s]\n", def("padding"))
		fmt.Fprintf(out, "      --residue-types string  Comma-separated residue tokens (default: 20 standard AAs)\n")

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0 = all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --sort                  Sort records deterministically across the batch [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --no-header             Suppress header line in text/TSV [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --no-record-exit-code int  Exit code when zero records produced [%s]\n", def("no-record-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress warnings and the batch summary [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var structures stringSlice
	fs.Var(&structures, "structures", "PDB file(s) to featurize (repeatable) [*]")
	fs.Var(&structures, "i", "shorthand for --structures")
	fs.StringVar(&opt.Chain, "chain", "", "restrict --structures input to one chain")
	fs.StringVar(&opt.Chain, "c", "", "shorthand for --chain")
	fs.StringVar(&opt.ListFile, "list", "", "file with structure IDs, one per line")
	fs.StringVar(&opt.ListFile, "l", "", "shorthand for --list")
	fs.StringVar(&opt.Path, "path", ".", "folder searched for listed structures")
	fs.StringVar(&opt.Path, "p", ".", "shorthand for --path")

	fs.Float64Var(&opt.ContactRadius, "contact-radius", 4.0, "contact cutoff in Å (inclusive) [4.0]")
	fs.Float64Var(&opt.HBondDistMax, "hbond-dist-max", 3.5, "donor-acceptor N...O cutoff in Å [3.5]")
	fs.Float64Var(&opt.HBondAngleMin, "hbond-angle-min", 120, "donor angle minimum in degrees [120]")

	fs.IntVar(&opt.MaxPartners, "max-partners", 8, "interaction partners kept per residue [8]")
	fs.StringVar(&opt.Padding, "padding", "pad-sentinel", "window policy: pad-sentinel | report-count [pad-sentinel]")
	fs.StringVar(&opt.ResidueTypes, "residue-types", "", "comma-separated residue tokens (empty = 20 standard AAs)")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "shorthand for --threads")

	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", "text", "shorthand for --output")
	fs.BoolVar(&opt.Sort, "sort", false, "sort records deterministically (structure, chain, residue) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.IntVar(&opt.NoRecordExitCode, "no-record-exit-code", 1, "exit code when zero records produced [1]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings and the batch summary [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "shorthand for --quiet")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Structures = structures
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.Structures = append(opt.Structures, exp...)
	}
	opt.Header = !noHeader

	// Validation
	usingFiles := len(opt.Structures) > 0
	usingList := opt.ListFile != ""
	switch {
	case !usingFiles && !usingList:
		return opt, errors.New("provide --structures or --list")
	case opt.Chain != "" && usingList:
		return opt, errors.New("--chain applies to --structures input; list entries select chains by suffix (1abcA)")
	}
	if opt.ContactRadius <= 0 {
		return opt, errors.New("--contact-radius must be > 0")
	}
	if opt.HBondDistMax <= 0 {
		return opt, errors.New("--hbond-dist-max must be > 0")
	}
	if opt.HBondAngleMin < 0 || opt.HBondAngleMin > 180 {
		return opt, errors.New("--hbond-angle-min must be within [0, 180]")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "jsonl" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
