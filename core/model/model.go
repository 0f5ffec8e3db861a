// core/model/model.go
package model

import "strucfeat-core/geom"

// RawAtom is one atom as delivered by a structure source, before alternate
// locations are resolved.
type RawAtom struct {
	Name      string
	AltLoc    string
	Occupancy float64
	X, Y, Z   float64
}

// RawResidue is one monomer as delivered by a structure source.
type RawResidue struct {
	Type   string // residue-type token, uppercase
	SeqNum int
	ICode  byte
	Atoms  []RawAtom
}

type RawChain struct {
	ID       string
	Residues []RawResidue
}

// RawStructure is the parser-independent input form consumed by Adapt.
type RawStructure struct {
	ID     string
	Chains []RawChain
}

// Atom is a resolved atom: one coordinate per atom name within a residue.
type Atom struct {
	Name string
	Pos  geom.Vec3
}

// Residue owns its atoms exclusively; atom names are unique after Adapt.
// Treat as read-only once built.
type Residue struct {
	Type   string
	SeqNum int
	ICode  byte

	atoms []Atom
	index map[string]int
}

// Atom looks up an atom by name.
func (r *Residue) Atom(name string) (Atom, bool) {
	i, ok := r.index[name]
	if !ok {
		return Atom{}, false
	}
	return r.atoms[i], true
}

// Atoms returns the residue's atoms in input order. Callers must not modify
// the returned slice.
func (r *Residue) Atoms() []Atom { return r.atoms }

type Chain struct {
	ID       string
	Residues []Residue
}

// Structure is immutable once Adapt returns it. Chain and residue order
// follow the input, never spatial proximity.
type Structure struct {
	ID     string
	Chains []Chain
}

// Raw converts an adapted structure back into its source form. Adapting the
// result again yields an identical structure (Adapt is idempotent).
func (s *Structure) Raw() RawStructure {
	raw := RawStructure{ID: s.ID, Chains: make([]RawChain, len(s.Chains))}
	for ci, c := range s.Chains {
		rc := RawChain{ID: c.ID, Residues: make([]RawResidue, len(c.Residues))}
		for ri, r := range c.Residues {
			rr := RawResidue{Type: r.Type, SeqNum: r.SeqNum, ICode: r.ICode}
			for _, a := range r.atoms {
				rr.Atoms = append(rr.Atoms, RawAtom{
					Name: a.Name, Occupancy: 1,
					X: a.Pos.X, Y: a.Pos.Y, Z: a.Pos.Z,
				})
			}
			rc.Residues[ri] = rr
		}
		raw.Chains[ci] = rc
	}
	return raw
}
