// core/geom/value.go
package geom

// Value is a measurement that may be missing. Descriptors computed from
// absent atoms or degenerate vectors carry the missing state explicitly so
// that NaN/Inf never reaches downstream consumers or serialized output.
type Value struct {
	v  float64
	ok bool
}

// Missing is the undefined measurement.
var Missing = Value{}

// Some wraps a defined measurement.
func Some(v float64) Value { return Value{v: v, ok: true} }

// Defined reports whether the measurement exists.
func (x Value) Defined() bool { return x.ok }

// Float returns the measurement and whether it is defined.
func (x Value) Float() (float64, bool) { return x.v, x.ok }

// Or returns the measurement, or sentinel when missing.
func (x Value) Or(sentinel float64) float64 {
	if !x.ok {
		return sentinel
	}
	return x.v
}
