// Package pipeline fans structures out to featurization workers and streams
// the resulting records to a visit callback.
//
// Each structure is an independent unit of work: adapt, index, detect,
// assemble. A structure that fails is skipped with a diagnostic; the batch
// always continues.
package pipeline
