// internal/output/json.go
package output

import (
	"io"

	"strucfeat-core/feature"

	"strucfeat/internal/jsonutil"
	"strucfeat/pkg/api"
)

// ToAPIRecord converts a domain feature.Record to the stable wire schema (v1).
func ToAPIRecord(r feature.Record) api.FeatureRecordV1 {
	v := api.FeatureRecordV1{
		StructureID:  r.StructureID,
		ChainID:      r.ChainID,
		ResIndex:     r.ResIndex,
		ResType:      r.ResType,
		Phi:          r.Phi.Or(api.MissingSentinel),
		Psi:          r.Psi.Or(api.MissingSentinel),
		Omega:        r.Omega.Or(api.MissingSentinel),
		NCaCAngle:    r.NCaCAngle.Or(api.MissingSentinel),
		CaNextDist:   r.CaNextDist.Or(api.MissingSentinel),
		CaX:          r.CaX.Or(api.MissingSentinel),
		CaY:          r.CaY.Or(api.MissingSentinel),
		CaZ:          r.CaZ.Or(api.MissingSentinel),
		PartnerCount: r.PartnerCount,
		Partners:     make([]api.PartnerV1, 0, len(r.Partners)),
	}
	if r.ICode != 0 && r.ICode != ' ' {
		v.ICode = string(rune(r.ICode))
	}
	for _, p := range r.Partners {
		v.Partners = append(v.Partners, api.PartnerV1{
			ChainID:    p.ChainID,
			ResIndex:   p.ResIndex,
			Kinds:      append([]string(nil), p.Kinds...),
			MinDist:    p.MinDist.Or(api.MissingSentinel),
			HBondDist:  p.HBondDist.Or(api.MissingSentinel),
			DonorAngle: p.DonorAngle.Or(api.MissingSentinel),
		})
	}
	return v
}

func toAPIRecords(list []feature.Record) []api.FeatureRecordV1 {
	out := make([]api.FeatureRecordV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIRecord(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 records (pretty-indented).
func WriteJSON(w io.Writer, list []feature.Record) error {
	return jsonutil.EncodePretty(w, toAPIRecords(list))
}
