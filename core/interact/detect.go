// core/interact/detect.go
package interact

import (
	"sort"

	"strucfeat-core/geom"
	"strucfeat-core/model"
	"strucfeat-core/spatial"
)

// Interaction kinds. A residue pair may carry several at once; each kind is
// an independent record.
const (
	KindAdjacent = "adjacent" // same chain, sequence numbers differ by 1
	KindContact  = "contact"  // min inter-atom distance <= ContactRadius
	KindHBond    = "hbond"    // backbone N...O donor-acceptor candidate
)

// Thresholds are the geometric criteria, fixed for a whole batch.
type Thresholds struct {
	ContactRadius float64 // Å, inclusive
	HBondDistMax  float64 // Å, donor-acceptor N...O, inclusive
	HBondAngleMin float64 // degrees at the donor, inclusive
}

// MaxRadius is the widest query any classification needs.
func (t Thresholds) MaxRadius() float64 {
	if t.HBondDistMax > t.ContactRadius {
		return t.HBondDistMax
	}
	return t.ContactRadius
}

// Record is one classified residue-pair relationship, with the measurements
// that justified it. Participants are canonical: (ChainI,ResI) < (ChainJ,ResJ).
type Record struct {
	ChainI, ResI int
	ChainJ, ResJ int
	Kind         string

	MinDist    geom.Value // closest inter-atom distance for the pair
	HBondDist  geom.Value // donor-acceptor distance (hbond records only)
	DonorAngle geom.Value // CA-N...O angle at the donor (hbond records only)
}

type pairKey struct{ ci, ri, cj, rj int }

// Detect classifies every residue pair whose atoms come within
// t.MaxRadius() of each other. Records are emitted in ascending
// (ChainI, ResI, ChainJ, ResJ) order with kinds ordered adjacent, contact,
// hbond, so repeated runs produce identical sequences. A pair that cannot be
// classified (missing atoms) simply yields no record of that kind.
func Detect(s *model.Structure, idx *spatial.Index, t Thresholds) []Record {
	maxR := t.MaxRadius()

	// Minimum inter-atom distance per candidate pair, found via the grid.
	minDist := make(map[pairKey]float64)
	for _, a := range idx.Atoms() {
		for _, b := range idx.Within(a.Pos, maxR) {
			if b.Chain < a.Chain || (b.Chain == a.Chain && b.Residue <= a.Residue) {
				continue // keep one orientation per pair, skip self
			}
			k := pairKey{a.Chain, a.Residue, b.Chain, b.Residue}
			d := a.Pos.Dist(b.Pos)
			if prev, seen := minDist[k]; !seen || d < prev {
				minDist[k] = d
			}
		}
	}

	pairs := make([]pairKey, 0, len(minDist))
	for k := range minDist {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if pa.ci != pb.ci {
			return pa.ci < pb.ci
		}
		if pa.ri != pb.ri {
			return pa.ri < pb.ri
		}
		if pa.cj != pb.cj {
			return pa.cj < pb.cj
		}
		return pa.rj < pb.rj
	})

	var out []Record
	for _, k := range pairs {
		ri := &s.Chains[k.ci].Residues[k.ri]
		rj := &s.Chains[k.cj].Residues[k.rj]
		md := geom.Some(minDist[k])

		base := Record{ChainI: k.ci, ResI: k.ri, ChainJ: k.cj, ResJ: k.rj, MinDist: md}

		if k.ci == k.cj && abs(ri.SeqNum-rj.SeqNum) == 1 {
			r := base
			r.Kind = KindAdjacent
			out = append(out, r)
		}
		if minDist[k] <= t.ContactRadius {
			r := base
			r.Kind = KindContact
			out = append(out, r)
		}
		if dist, angle, ok := hbondCandidate(ri, rj, t); ok {
			r := base
			r.Kind = KindHBond
			r.HBondDist = dist
			r.DonorAngle = angle
			out = append(out, r)
		}
	}
	return out
}

// hbondCandidate tests the backbone donor-acceptor geometry in both
// directions: N(i)...O(j) first, then N(j)...O(i). The first direction that
// satisfies both thresholds wins. This is a geometric proxy, not a validated
// chemical bond.
func hbondCandidate(ri, rj *model.Residue, t Thresholds) (geom.Value, geom.Value, bool) {
	if d, a, ok := donorAcceptor(ri, rj, t); ok {
		return d, a, true
	}
	return donorAcceptor(rj, ri, t)
}

func donorAcceptor(donor, acceptor *model.Residue, t Thresholds) (geom.Value, geom.Value, bool) {
	n, okN := donor.Atom("N")
	ca, okCA := donor.Atom("CA")
	o, okO := acceptor.Atom("O")
	if !okN || !okCA || !okO {
		return geom.Missing, geom.Missing, false
	}
	dist := n.Pos.Dist(o.Pos)
	if dist > t.HBondDistMax {
		return geom.Missing, geom.Missing, false
	}
	angle := geom.Angle(ca.Pos, n.Pos, o.Pos)
	v, ok := angle.Float()
	if !ok || v < t.HBondAngleMin {
		return geom.Missing, geom.Missing, false
	}
	return geom.Some(dist), angle, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
