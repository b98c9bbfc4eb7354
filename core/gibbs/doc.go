// Package gibbs is the motif-finding core: a Gibbs sampler over one start
// offset per sequence. It never imports app, cli, output or writers; keep it
// domain-only.
//
// One iteration holds a random sequence out, builds a profile from the
// others (core/profile), weighs every offset of the held-out sequence
// (core/weight) and resamples its offset (core/sampler). A run ends Converged
// once Stability consecutive iterations left the resampled offset unchanged,
// or Exhausted when MaxIterations is spent; both report the current
// assignment.
package gibbs
