package gibbs

import (
	"context"

	"gibbsmotif-core/sampler"
)

// Search runs restarts independent chains sharing smp and keeps the result
// with the highest Score; ties keep the earlier chain. Restart is the
// 0-based index of the chain that won.
func Search(ctx context.Context, seqs [][]int, cfg Config, smp *sampler.Sampler, restarts int) (best Result, restart int, err error) {
	if restarts < 1 {
		restarts = 1
	}
	for r := 0; r < restarts; r++ {
		e, err := New(seqs, cfg, smp)
		if err != nil {
			return Result{}, 0, err
		}
		res, runErr := e.Run(ctx)
		if r == 0 || res.Score > best.Score {
			best, restart = res, r
		}
		if runErr != nil {
			return best, restart, runErr
		}
	}
	return best, restart, nil
}
