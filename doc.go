// Package peakgo provides a batched peak-detection and clustering engine for
// complex-valued time series.
//
// The engine scans matched-filter signal-to-noise streams and reports, per
// series, the sparse set of local-maximum samples whose magnitude exceeds a
// per-series threshold, with at most one survivor per fixed-length window:
//
//   - Window reduction: one parallel block per window finds the sample of
//     maximum squared magnitude via a two-level reduction and keeps it only
//     above threshold.
//   - Neighbor suppression: a second pass discards a window's candidate when
//     an adjacent window holds a strictly larger one, so a run of nearby
//     high-magnitude windows reports only its tallest member.
//
// # Quick Start
//
// Build a batch, construct an engine over it, and invoke:
//
//	batch, err := peakgo.NewSeriesBatch(samples, batchSize, seriesLength)
//	if err != nil {
//	    panic(err)
//	}
//
//	eng, err := peakgo.New(batch)
//	if err != nil {
//	    panic(err)
//	}
//	defer eng.Close()
//
//	results, err := eng.ThresholdAndCluster(thresholds, 4096)
//	if err != nil {
//	    panic(err)
//	}
//	for s, r := range results {
//	    for i, idx := range r.Indices {
//	        fmt.Printf("series %d: peak %v at sample %d\n", s, r.Values[i], idx)
//	    }
//	}
//
// The engine borrows the batch for its lifetime: the caller must keep it
// valid and unchanged between invocations, mirroring the hardware-buffer
// model the design comes from. Scratch buffers are engine-owned, grow-only
// and reused across invocations; see WithBlockMemSize and WithMemoryLimit
// for sizing control.
//
// # Concurrency
//
// An engine supports exactly one in-flight invocation. No internal locking
// serializes callers; issuing overlapping invocations on one engine is a
// caller error because scratch buffers are reused in place.
package peakgo
