// core/model/adapt_test.go
package model

import (
	"errors"
	"reflect"
	"testing"
)

var aa = map[string]bool{"G": true, "A": true, "L": true}

func gly(seq int, atoms ...RawAtom) RawResidue {
	return RawResidue{Type: "G", SeqNum: seq, Atoms: atoms}
}

func TestAdaptAltLocHighestOccupancyWins(t *testing.T) {
	raw := RawStructure{ID: "t1", Chains: []RawChain{{
		ID: "A",
		Residues: []RawResidue{gly(1,
			RawAtom{Name: "CA", AltLoc: "A", Occupancy: 0.4, X: 1},
			RawAtom{Name: "CA", AltLoc: "B", Occupancy: 0.6, X: 2},
			RawAtom{Name: "N", Occupancy: 1, X: 3},
		)},
	}}}
	s, _, err := Adapt(raw, aa)
	if err != nil {
		t.Fatal(err)
	}
	ca, ok := s.Chains[0].Residues[0].Atom("CA")
	if !ok || ca.Pos.X != 2 {
		t.Fatalf("expected altloc B (x=2), got %+v ok=%v", ca, ok)
	}
	if n := len(s.Chains[0].Residues[0].Atoms()); n != 2 {
		t.Fatalf("expected 2 resolved atoms, got %d", n)
	}
}

func TestAdaptAltLocTieKeepsFirstListed(t *testing.T) {
	raw := RawStructure{ID: "t2", Chains: []RawChain{{
		ID: "A",
		Residues: []RawResidue{gly(1,
			RawAtom{Name: "CA", AltLoc: "A", Occupancy: 0.5, X: 1},
			RawAtom{Name: "CA", AltLoc: "B", Occupancy: 0.5, X: 2},
		)},
	}}}
	s, _, err := Adapt(raw, aa)
	if err != nil {
		t.Fatal(err)
	}
	ca, _ := s.Chains[0].Residues[0].Atom("CA")
	if ca.Pos.X != 1 {
		t.Fatalf("tie must keep first-listed variant, got x=%v", ca.Pos.X)
	}
}

func TestAdaptDropsUnsupportedResidues(t *testing.T) {
	raw := RawStructure{ID: "t3", Chains: []RawChain{{
		ID: "A",
		Residues: []RawResidue{
			gly(1, RawAtom{Name: "CA", Occupancy: 1}),
			{Type: "X", SeqNum: 2, Atoms: []RawAtom{{Name: "CA", Occupancy: 1}}},
			gly(3, RawAtom{Name: "CA", Occupancy: 1}),
		},
	}}}
	s, stats, err := Adapt(raw, aa)
	if err != nil {
		t.Fatal(err)
	}
	if stats.DroppedResidues != 1 {
		t.Fatalf("dropped = %d, want 1", stats.DroppedResidues)
	}
	if len(s.Chains[0].Residues) != 2 {
		t.Fatalf("kept = %d residues, want 2", len(s.Chains[0].Residues))
	}
}

func TestAdaptEmptyStructure(t *testing.T) {
	_, _, err := Adapt(RawStructure{ID: "t4"}, aa)
	if !errors.Is(err, ErrEmptyStructure) {
		t.Fatalf("err = %v, want ErrEmptyStructure", err)
	}
}

func TestAdaptUnsupportedChemistry(t *testing.T) {
	raw := RawStructure{ID: "t5", Chains: []RawChain{{
		ID: "A",
		Residues: []RawResidue{
			{Type: "DA", SeqNum: 1, Atoms: []RawAtom{{Name: "P", Occupancy: 1}}},
			{Type: "DT", SeqNum: 2, Atoms: []RawAtom{{Name: "P", Occupancy: 1}}},
		},
	}}}
	_, _, err := Adapt(raw, aa)
	if !errors.Is(err, ErrUnsupportedChemistry) {
		t.Fatalf("err = %v, want ErrUnsupportedChemistry", err)
	}
}

func TestAdaptIdempotent(t *testing.T) {
	raw := RawStructure{ID: "t6", Chains: []RawChain{{
		ID: "A",
		Residues: []RawResidue{
			gly(1,
				RawAtom{Name: "N", Occupancy: 1, X: 0.1},
				RawAtom{Name: "CA", AltLoc: "A", Occupancy: 0.7, X: 1.0},
				RawAtom{Name: "CA", AltLoc: "B", Occupancy: 0.3, X: 9.0},
			),
			gly(2, RawAtom{Name: "CA", Occupancy: 1, X: 4.0}),
		},
	}}}
	s1, _, err := Adapt(raw, aa)
	if err != nil {
		t.Fatal(err)
	}
	s2, stats2, err := Adapt(s1.Raw(), aa)
	if err != nil {
		t.Fatal(err)
	}
	if stats2.DroppedResidues != 0 || stats2.DroppedChains != 0 {
		t.Fatalf("re-adapt dropped something: %+v", stats2)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("re-adapt is not identity:\n%+v\n%+v", s1, s2)
	}
}
