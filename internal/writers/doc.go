// Package writers turns a finished run into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (text, TSV, pretty blocks, JSON/JSONL).
//   - The sampling core stays domain-only; app stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
