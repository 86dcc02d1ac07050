package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunParallel shards the observation groups across workers goroutines. Group
// classification is independent of every other group, so sharding needs no
// locking: each worker writes findings into its own slot and the slots are
// concatenated in shard order afterwards, giving the same deterministic
// output as Run for any worker count.
//
// workers <= 1 falls back to the serial pass.
func (e *Engine) RunParallel(ctx context.Context, observations []Observation, workers int) ([]Finding, error) {
	if workers <= 1 {
		return e.Run(ctx, observations)
	}

	keys, groups := groupByParagraph(observations)
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers <= 1 {
		return e.Run(ctx, observations)
	}

	shards := make([][]Finding, workers)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Stride partition: worker w takes keys w, w+workers, ...
			var findings []Finding
			for i := w; i < len(keys); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				id := keys[i]
				findings = append(findings, e.classifyGroup(id, groups[id])...)
			}
			shards[w] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Re-interleave shard findings back into sorted-key order. Each group
	// contributes a contiguous run of findings, so walk the keys and pop
	// from the owning shard.
	offsets := make([]int, workers)
	merged := make([]Finding, 0, len(observations))
	for i, id := range keys {
		w := i % workers
		shard := shards[w]
		for offsets[w] < len(shard) && shard[offsets[w]].ParagraphID == id {
			merged = append(merged, shard[offsets[w]])
			offsets[w]++
		}
	}
	return merged, nil
}
