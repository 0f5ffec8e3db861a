package visitors

import "strucfeat-core/feature"

// PassThrough returns the record unchanged.
type PassThrough struct{}

func (PassThrough) Visit(r feature.Record) (keep bool, out feature.Record, err error) {
	return true, r, nil
}
