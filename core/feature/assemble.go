// core/feature/assemble.go
package feature

import (
	"errors"
	"fmt"
	"sort"

	"strucfeat-core/geom"
	"strucfeat-core/interact"
	"strucfeat-core/model"
)

// Padding policies for the partner window.
const (
	PadSentinel = "pad-sentinel" // always exactly MaxPartners slots
	ReportCount = "report-count" // variable length, count reported
)

// ErrWindowConfig marks an unusable window configuration. It is fatal for
// the whole batch and must be caught before any structure is processed.
var ErrWindowConfig = errors.New("inconsistent window config")

// WindowConfig bounds the interaction neighborhood kept per residue.
type WindowConfig struct {
	MaxPartners int
	Padding     string
}

func (w WindowConfig) Validate() error {
	if w.MaxPartners < 1 {
		return fmt.Errorf("%w: max partners %d, need >= 1", ErrWindowConfig, w.MaxPartners)
	}
	if w.Padding != PadSentinel && w.Padding != ReportCount {
		return fmt.Errorf("%w: unknown padding policy %q", ErrWindowConfig, w.Padding)
	}
	return nil
}

// Partner is one interaction slot in a record's window. A sentinel slot
// (padding) has ChainID "-" and ResIndex -1.
type Partner struct {
	ChainID  string
	ResIndex int
	Kinds    []string // subset of adjacent|contact|hbond, in that order

	MinDist    geom.Value
	HBondDist  geom.Value
	DonorAngle geom.Value
}

// SentinelPartner fills unused window slots under the pad-sentinel policy.
func SentinelPartner() Partner {
	return Partner{ChainID: "-", ResIndex: -1}
}

// Record is the final per-residue feature unit. Field order and window
// length are identical across every record of a run configuration.
type Record struct {
	StructureID string
	ChainID     string
	ResIndex    int
	ICode       byte
	ResType     string

	Backbone

	// PartnerCount is the number of real (non-sentinel) partners retained.
	PartnerCount int
	Partners     []Partner
}

// partnerAccum collects one pair's classifications seen from one side.
type partnerAccum struct {
	chain, res int
	kinds      []string
	minDist    geom.Value
	hbondDist  geom.Value
	donorAngle geom.Value
}

// Assemble builds one record per residue: backbone descriptors plus the
// bounded interaction window. Partners are the MaxPartners closest by
// minimum distance; ties prefer the lower (chain, residue) index.
func Assemble(s *model.Structure, bb [][]Backbone, ints []interact.Record, w WindowConfig) ([]Record, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	// Partner lists per residue. Both participants of a pair see each other.
	acc := make(map[[2]int][]*partnerAccum)
	find := func(side [2]int, chain, res int) *partnerAccum {
		for _, p := range acc[side] {
			if p.chain == chain && p.res == res {
				return p
			}
		}
		p := &partnerAccum{chain: chain, res: res}
		acc[side] = append(acc[side], p)
		return p
	}
	apply := func(p *partnerAccum, r interact.Record) {
		p.kinds = append(p.kinds, r.Kind)
		p.minDist = r.MinDist
		if r.Kind == interact.KindHBond {
			p.hbondDist = r.HBondDist
			p.donorAngle = r.DonorAngle
		}
	}
	for _, r := range ints {
		apply(find([2]int{r.ChainI, r.ResI}, r.ChainJ, r.ResJ), r)
		apply(find([2]int{r.ChainJ, r.ResJ}, r.ChainI, r.ResI), r)
	}

	var out []Record
	for ci := range s.Chains {
		c := &s.Chains[ci]
		for ri := range c.Residues {
			res := &c.Residues[ri]
			rec := Record{
				StructureID: s.ID,
				ChainID:     c.ID,
				ResIndex:    res.SeqNum,
				ICode:       res.ICode,
				ResType:     res.Type,
				Backbone:    bb[ci][ri],
			}
			rec.Partners, rec.PartnerCount = window(s, acc[[2]int{ci, ri}], w)
			out = append(out, rec)
		}
	}
	return out, nil
}

func window(s *model.Structure, cands []*partnerAccum, w WindowConfig) ([]Partner, int) {
	sort.SliceStable(cands, func(a, b int) bool {
		da, _ := cands[a].minDist.Float()
		db, _ := cands[b].minDist.Float()
		if da != db {
			return da < db
		}
		if cands[a].chain != cands[b].chain {
			return cands[a].chain < cands[b].chain
		}
		return cands[a].res < cands[b].res
	})
	if len(cands) > w.MaxPartners {
		cands = cands[:w.MaxPartners]
	}

	partners := make([]Partner, 0, w.MaxPartners)
	for _, p := range cands {
		partners = append(partners, Partner{
			ChainID:    s.Chains[p.chain].ID,
			ResIndex:   s.Chains[p.chain].Residues[p.res].SeqNum,
			Kinds:      orderKinds(p.kinds),
			MinDist:    p.minDist,
			HBondDist:  p.hbondDist,
			DonorAngle: p.donorAngle,
		})
	}
	count := len(partners)
	if w.Padding == PadSentinel {
		for len(partners) < w.MaxPartners {
			partners = append(partners, SentinelPartner())
		}
	}
	return partners, count
}

// orderKinds returns the kinds in canonical adjacent, contact, hbond order.
func orderKinds(kinds []string) []string {
	var out []string
	for _, want := range []string{interact.KindAdjacent, interact.KindContact, interact.KindHBond} {
		for _, k := range kinds {
			if k == want {
				out = append(out, k)
				break
			}
		}
	}
	return out
}
