// Package kernel implements the two compute passes of the
// threshold-and-cluster engine.
//
// The first pass (Reduce) finds, for one fixed-length window of one series,
// the sample of maximum squared magnitude, and records it in the series'
// scratch row only when it exceeds the series' squared threshold. It is a
// data-parallel block kernel: the engine dispatches one Reduce call per
// (series, window) pair and the calls share nothing but their disjoint
// scratch slots.
//
// The second pass (Suppress) walks the per-window candidates of one series
// and invalidates any candidate whose immediate neighbor holds a strictly
// larger squared magnitude. It is a single comparison step, not an iteration
// to a fixed point: two adjacent equal-height peaks both survive, and a
// monotone run keeps only its highest member. Downstream consumers are
// calibrated to exactly this behavior.
package kernel
