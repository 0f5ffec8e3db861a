// Package writers turns feature records into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV layout, JSON/JSONL).
//   - The feature core stays domain-only; the pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
