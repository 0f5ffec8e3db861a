// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"strucfeat-core/feature"
	"strucfeat-core/interact"
	"strucfeat-core/model"

	"strucfeat/internal/common"
	"strucfeat/internal/source"
)

type stubSource struct {
	id  string
	raw model.RawStructure
	err error
}

func (s stubSource) ID() string { return s.id }

func (s stubSource) Load() (model.RawStructure, error) {
	if s.err != nil {
		return model.RawStructure{}, s.err
	}
	return s.raw, nil
}

func testConfig(threads int) Config {
	return Config{
		Threads: threads,
		Thresholds: interact.Thresholds{
			ContactRadius: 4.0,
			HBondDistMax:  3.5,
			HBondAngleMin: 120,
		},
		Window:    feature.WindowConfig{MaxPartners: 4, Padding: feature.PadSentinel},
		Supported: map[string]bool{"G": true, "A": true},
	}
}

// tinyStructure builds a two-residue single-chain structure with enough
// backbone atoms for the geometry stage to produce defined values.
func tinyStructure(id string, offset float64) model.RawStructure {
	bb := func(seqNum int, base float64) model.RawResidue {
		return model.RawResidue{
			Type:   "G",
			SeqNum: seqNum,
			Atoms: []model.RawAtom{
				{Name: "N", Occupancy: 1, X: base, Y: 0, Z: 0},
				{Name: "CA", Occupancy: 1, X: base + 1.5, Y: 0, Z: 0},
				{Name: "C", Occupancy: 1, X: base + 1.5, Y: 1.5, Z: 0},
				{Name: "O", Occupancy: 1, X: base + 1.5, Y: 1.5, Z: 1.2},
			},
		}
	}
	return model.RawStructure{
		ID: id,
		Chains: []model.RawChain{
			{ID: "A", Residues: []model.RawResidue{bb(1, offset), bb(2, offset+3.8)}},
		},
	}
}

func collect(t *testing.T, cfg Config, sources []source.Source) ([]feature.Record, Stats, []string) {
	t.Helper()
	var (
		recs  []feature.Record
		warns []string
	)
	stats, err := ForEachRecord(context.Background(), cfg, sources,
		func(r feature.Record) error {
			recs = append(recs, r)
			return nil
		},
		func(format string, a ...any) {
			warns = append(warns, fmt.Sprintf(format, a...))
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return recs, stats, warns
}

func TestParallelMatchesSerial(t *testing.T) {
	var sources []source.Source
	for i := 0; i < 6; i++ {
		sources = append(sources, stubSource{
			id:  fmt.Sprintf("s%02d", i),
			raw: tinyStructure(fmt.Sprintf("s%02d", i), float64(i)*10),
		})
	}

	serial, sstats, _ := collect(t, testConfig(1), sources)
	parallel, pstats, _ := collect(t, testConfig(4), sources)

	if sstats != pstats {
		t.Fatalf("stats differ: serial %+v, parallel %+v", sstats, pstats)
	}
	common.SortRecords(serial)
	common.SortRecords(parallel)
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatal("parallel output differs from serial after sorting")
	}
	if len(serial) != 12 {
		t.Fatalf("got %d records, want 12", len(serial))
	}
}

func TestFailingSourceIsSkipped(t *testing.T) {
	sources := []source.Source{
		stubSource{id: "bad", err: errors.New("corrupt file")},
		stubSource{id: "empty", raw: model.RawStructure{ID: "empty"}},
		stubSource{id: "good", raw: tinyStructure("good", 0)},
	}
	recs, stats, warns := collect(t, testConfig(2), sources)

	if stats.Processed != 1 || stats.Skipped != 2 {
		t.Fatalf("stats = %+v, want 1 processed / 2 skipped", stats)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2 from the good structure", len(recs))
	}
	for _, r := range recs {
		if r.StructureID != "good" {
			t.Fatalf("record from unexpected structure %q", r.StructureID)
		}
	}
	if len(warns) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warns), warns)
	}
}

func TestUnsupportedResiduesCounted(t *testing.T) {
	raw := tinyStructure("mix", 0)
	raw.Chains[0].Residues = append(raw.Chains[0].Residues, model.RawResidue{
		Type:   "Z",
		SeqNum: 3,
		Atoms:  []model.RawAtom{{Name: "CA", Occupancy: 1, X: 50, Y: 0, Z: 0}},
	})
	recs, stats, warns := collect(t, testConfig(1), []source.Source{stubSource{id: "mix", raw: raw}})

	if stats.DroppedResidues != 1 {
		t.Fatalf("DroppedResidues = %d, want 1", stats.DroppedResidues)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	found := false
	for _, w := range warns {
		if strings.Contains(w, "dropped 1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing drop warning in %v", warns)
	}
}

func TestVisitErrorStopsRun(t *testing.T) {
	sources := []source.Source{
		stubSource{id: "a", raw: tinyStructure("a", 0)},
		stubSource{id: "b", raw: tinyStructure("b", 100)},
	}
	sentinel := errors.New("writer closed")
	_, err := ForEachRecord(context.Background(), testConfig(1), sources,
		func(feature.Record) error { return sentinel }, nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ForEachRecord(ctx, testConfig(2),
		[]source.Source{stubSource{id: "a", raw: tinyStructure("a", 0)}},
		func(feature.Record) error { return nil }, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
