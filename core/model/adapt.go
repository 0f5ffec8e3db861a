// core/model/adapt.go
package model

import (
	"errors"
	"fmt"

	"strucfeat-core/geom"
)

var (
	// ErrEmptyStructure marks a structure with no usable chains at all.
	ErrEmptyStructure = errors.New("empty structure")
	// ErrUnsupportedChemistry marks a structure whose residues are entirely
	// outside the supported set: the polymer type is not one we featurize.
	ErrUnsupportedChemistry = errors.New("unsupported chemistry")
)

// AdaptStats summarizes what Adapt discarded. Surfaced as diagnostics, never
// as output fields.
type AdaptStats struct {
	DroppedResidues int
	DroppedChains   int
}

// Adapt normalizes a raw structure: alternate locations are collapsed to one
// atom per name, residues with unsupported types are dropped (and counted),
// chains left empty are removed. The result is immutable.
//
// The alternate-location winner is the highest-occupancy variant; ties go to
// the first-listed variant so repeated runs pick the same atom.
func Adapt(raw RawStructure, supported map[string]bool) (*Structure, AdaptStats, error) {
	var stats AdaptStats

	total := 0
	s := &Structure{ID: raw.ID}
	for _, rc := range raw.Chains {
		chain := Chain{ID: rc.ID}
		for _, rr := range rc.Residues {
			total++
			if !supported[rr.Type] {
				stats.DroppedResidues++
				continue
			}
			chain.Residues = append(chain.Residues, resolveResidue(rr))
		}
		if len(chain.Residues) == 0 {
			stats.DroppedChains++
			continue
		}
		s.Chains = append(s.Chains, chain)
	}

	if len(s.Chains) == 0 {
		if total > 0 {
			return nil, stats, fmt.Errorf("%s: %w", raw.ID, ErrUnsupportedChemistry)
		}
		return nil, stats, fmt.Errorf("%s: %w", raw.ID, ErrEmptyStructure)
	}
	return s, stats, nil
}

// resolveResidue deduplicates alternate-location atoms. Atom order follows
// the first appearance of each name.
func resolveResidue(rr RawResidue) Residue {
	res := Residue{
		Type:   rr.Type,
		SeqNum: rr.SeqNum,
		ICode:  rr.ICode,
		index:  make(map[string]int, len(rr.Atoms)),
	}
	occ := make([]float64, 0, len(rr.Atoms))
	for _, a := range rr.Atoms {
		pos := Atom{Name: a.Name, Pos: geom.Vec3{X: a.X, Y: a.Y, Z: a.Z}}
		if i, seen := res.index[a.Name]; seen {
			if a.Occupancy > occ[i] {
				res.atoms[i] = pos
				occ[i] = a.Occupancy
			}
			continue
		}
		res.index[a.Name] = len(res.atoms)
		res.atoms = append(res.atoms, pos)
		occ = append(occ, a.Occupancy)
	}
	return res
}
