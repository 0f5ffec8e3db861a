// pkg/api/records_v1.go
package api

// MissingSentinel replaces undefined numeric descriptors in serialized
// output. It is out of range for every descriptor (angles live in
// [-180, 180], distances are non-negative) and keeps records free of
// NaN/Inf, which many JSON consumers reject.
const MissingSentinel = -999.0

// PartnerV1 is one interaction slot of a record's window. A padding slot
// has ChainID "-" and ResIndex -1.
type PartnerV1 struct {
	ChainID    string   `json:"chain_id"`
	ResIndex   int      `json:"res_index"`
	Kinds      []string `json:"kinds,omitempty"`
	MinDist    float64  `json:"min_dist"`
	HBondDist  float64  `json:"hbond_dist"`
	DonorAngle float64  `json:"donor_angle"`
}

// FeatureRecordV1 is the stable JSON/JSONL schema for per-residue feature
// records. Keep fields, names, and types stable. Add new fields only with
// ",omitempty".
type FeatureRecordV1 struct {
	StructureID string `json:"structure_id"`
	ChainID     string `json:"chain_id"`
	ResIndex    int    `json:"res_index"`
	ICode       string `json:"icode,omitempty"`
	ResType     string `json:"res_type"`

	Phi        float64 `json:"phi"`
	Psi        float64 `json:"psi"`
	Omega      float64 `json:"omega"`
	NCaCAngle  float64 `json:"n_ca_c_angle"`
	CaNextDist float64 `json:"ca_next_dist"`
	CaX        float64 `json:"ca_x"`
	CaY        float64 `json:"ca_y"`
	CaZ        float64 `json:"ca_z"`

	PartnerCount int         `json:"n_partners"`
	Partners     []PartnerV1 `json:"partners"`
}
