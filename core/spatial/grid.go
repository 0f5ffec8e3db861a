// core/spatial/grid.go
package spatial

import (
	"errors"
	"math"
	"sort"

	"strucfeat-core/geom"
	"strucfeat-core/model"
)

// ErrNoAtoms marks an index build over zero atoms; the structure cannot be
// featurized.
var ErrNoAtoms = errors.New("no atoms to index")

// cellSize is the uniform grid pitch in Ångströms. Typical query radii
// (contacts, hydrogen bonds) are 3-6 Å, so one-cell neighborhoods stay small.
const cellSize = 5.0

// AtomRef locates one atom inside its structure.
type AtomRef struct {
	Chain   int // chain index within the structure
	Residue int // residue index within the chain
	Atom    int // atom index within the residue
	Name    string
	Pos     geom.Vec3
}

type cellKey struct{ x, y, z int }

// Index is a uniform spatial grid over a structure snapshot. Read-only after
// Build; concurrent queries need no synchronization.
type Index struct {
	atoms []AtomRef
	cells map[cellKey][]int32
	min   geom.Vec3
}

// Build indexes atoms in the given order; that order is the tie-break order
// for all queries.
func Build(atoms []AtomRef) (*Index, error) {
	if len(atoms) == 0 {
		return nil, ErrNoAtoms
	}
	min := atoms[0].Pos
	for _, a := range atoms[1:] {
		min.X = math.Min(min.X, a.Pos.X)
		min.Y = math.Min(min.Y, a.Pos.Y)
		min.Z = math.Min(min.Z, a.Pos.Z)
	}
	idx := &Index{
		atoms: atoms,
		cells: make(map[cellKey][]int32, len(atoms)),
		min:   min,
	}
	for i, a := range atoms {
		k := idx.key(a.Pos)
		idx.cells[k] = append(idx.cells[k], int32(i))
	}
	return idx, nil
}

// BuildStructure indexes every atom of an adapted structure in canonical
// order (chain, residue, atom).
func BuildStructure(s *model.Structure) (*Index, error) {
	var atoms []AtomRef
	for ci := range s.Chains {
		for ri := range s.Chains[ci].Residues {
			for ai, a := range s.Chains[ci].Residues[ri].Atoms() {
				atoms = append(atoms, AtomRef{
					Chain: ci, Residue: ri, Atom: ai,
					Name: a.Name, Pos: a.Pos,
				})
			}
		}
	}
	return Build(atoms)
}

func (idx *Index) key(p geom.Vec3) cellKey {
	return cellKey{
		x: int(math.Floor((p.X - idx.min.X) / cellSize)),
		y: int(math.Floor((p.Y - idx.min.Y) / cellSize)),
		z: int(math.Floor((p.Z - idx.min.Z) / cellSize)),
	}
}

// Atoms returns the indexed atoms in input order. Callers must not modify
// the returned slice.
func (idx *Index) Atoms() []AtomRef { return idx.atoms }

// Within returns every atom whose distance to p is <= r (inclusive
// boundary), in input order.
func (idx *Index) Within(p geom.Vec3, r float64) []AtomRef {
	ids := idx.withinIDs(p, r)
	out := make([]AtomRef, len(ids))
	for i, id := range ids {
		out[i] = idx.atoms[id]
	}
	return out
}

func (idx *Index) withinIDs(p geom.Vec3, r float64) []int32 {
	if r < 0 {
		return nil
	}
	lo := idx.key(geom.Vec3{X: p.X - r, Y: p.Y - r, Z: p.Z - r})
	hi := idx.key(geom.Vec3{X: p.X + r, Y: p.Y + r, Z: p.Z + r})
	r2 := r * r

	var ids []int32
	for cx := lo.x; cx <= hi.x; cx++ {
		for cy := lo.y; cy <= hi.y; cy++ {
			for cz := lo.z; cz <= hi.z; cz++ {
				for _, i := range idx.cells[cellKey{cx, cy, cz}] {
					if idx.atoms[i].Pos.Dist2(p) <= r2 {
						ids = append(ids, i)
					}
				}
			}
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// Nearest returns the k atoms closest to atom i (excluding i itself), in
// ascending distance; equal distances keep input order. If fewer than k
// other atoms exist, all of them are returned.
func (idx *Index) Nearest(i, k int) []AtomRef {
	if k <= 0 || len(idx.atoms) < 2 {
		return nil
	}
	if k > len(idx.atoms)-1 {
		k = len(idx.atoms) - 1
	}
	p := idx.atoms[i].Pos

	// Expand the search radius until k candidates fit inside it; a k-th
	// neighbor beyond the current radius cannot be closer than one inside.
	r := cellSize
	for {
		ids := idx.withinIDs(p, r)
		cand := make([]int32, 0, len(ids))
		for _, id := range ids {
			if int(id) != i {
				cand = append(cand, id)
			}
		}
		if len(cand) >= k {
			sort.SliceStable(cand, func(a, b int) bool {
				da := idx.atoms[cand[a]].Pos.Dist2(p)
				db := idx.atoms[cand[b]].Pos.Dist2(p)
				if da != db {
					return da < db
				}
				return cand[a] < cand[b]
			})
			kth := math.Sqrt(idx.atoms[cand[k-1]].Pos.Dist2(p))
			if kth <= r {
				out := make([]AtomRef, k)
				for j := 0; j < k; j++ {
					out[j] = idx.atoms[cand[j]]
				}
				return out
			}
		}
		if r > idx.span() {
			// Everything is inside the radius already.
			sort.SliceStable(cand, func(a, b int) bool {
				da := idx.atoms[cand[a]].Pos.Dist2(p)
				db := idx.atoms[cand[b]].Pos.Dist2(p)
				if da != db {
					return da < db
				}
				return cand[a] < cand[b]
			})
			if len(cand) > k {
				cand = cand[:k]
			}
			out := make([]AtomRef, len(cand))
			for j, id := range cand {
				out[j] = idx.atoms[id]
			}
			return out
		}
		r *= 2
	}
}

func (idx *Index) span() float64 {
	max := idx.atoms[0].Pos
	for _, a := range idx.atoms[1:] {
		max.X = math.Max(max.X, a.Pos.X)
		max.Y = math.Max(max.Y, a.Pos.Y)
		max.Z = math.Max(max.Z, a.Pos.Z)
	}
	return max.Dist(idx.min)
}
