// core/feature/backbone.go
package feature

import (
	"strucfeat-core/geom"
	"strucfeat-core/model"
)

// Backbone holds the per-residue local-geometry descriptors. Any descriptor
// whose atoms are absent (or whose neighbor is across a chain break) is
// Missing.
type Backbone struct {
	Phi        geom.Value // C(i-1), N(i), CA(i), C(i)
	Psi        geom.Value // N(i), CA(i), C(i), N(i+1)
	Omega      geom.Value // CA(i-1), C(i-1), N(i), CA(i)
	NCaCAngle  geom.Value // bond angle at CA(i)
	CaNextDist geom.Value // CA(i) to CA(i+1)
	CaX        geom.Value
	CaY        geom.Value
	CaZ        geom.Value
}

// BackboneGeometry computes descriptors for residue i of a chain. Neighbors
// only count when sequence numbering is contiguous; a gap makes the
// dihedrals across it Missing rather than geometry across the break.
func BackboneGeometry(c *model.Chain, i int) Backbone {
	var bb Backbone
	cur := &c.Residues[i]

	var prev, next *model.Residue
	if i > 0 && cur.SeqNum-c.Residues[i-1].SeqNum == 1 {
		prev = &c.Residues[i-1]
	}
	if i+1 < len(c.Residues) && c.Residues[i+1].SeqNum-cur.SeqNum == 1 {
		next = &c.Residues[i+1]
	}

	n, okN := cur.Atom("N")
	ca, okCA := cur.Atom("CA")
	cc, okC := cur.Atom("C")

	if okCA {
		bb.CaX = geom.Some(ca.Pos.X)
		bb.CaY = geom.Some(ca.Pos.Y)
		bb.CaZ = geom.Some(ca.Pos.Z)
	}
	if okN && okCA && okC {
		bb.NCaCAngle = geom.Angle(n.Pos, ca.Pos, cc.Pos)
	}
	if prev != nil {
		if pc, ok := prev.Atom("C"); ok && okN && okCA && okC {
			bb.Phi = geom.Dihedral(pc.Pos, n.Pos, ca.Pos, cc.Pos)
		}
		pca, okPCA := prev.Atom("CA")
		pc, okPC := prev.Atom("C")
		if okPCA && okPC && okN && okCA {
			bb.Omega = geom.Dihedral(pca.Pos, pc.Pos, n.Pos, ca.Pos)
		}
	}
	if next != nil {
		if nn, ok := next.Atom("N"); ok && okN && okCA && okC {
			bb.Psi = geom.Dihedral(n.Pos, ca.Pos, cc.Pos, nn.Pos)
		}
		if nca, ok := next.Atom("CA"); ok && okCA {
			bb.CaNextDist = geom.Length(ca.Pos, nca.Pos)
		}
	}
	return bb
}

// ChainGeometry computes backbone descriptors for every residue of the
// structure, in chain/residue order.
func ChainGeometry(s *model.Structure) [][]Backbone {
	out := make([][]Backbone, len(s.Chains))
	for ci := range s.Chains {
		c := &s.Chains[ci]
		out[ci] = make([]Backbone, len(c.Residues))
		for ri := range c.Residues {
			out[ci][ri] = BackboneGeometry(c, ri)
		}
	}
	return out
}
