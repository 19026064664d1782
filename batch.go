package vortex

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// SumBatch hashes independent messages in parallel on the default
// dispatcher. See Dispatcher.SumBatch.
func SumBatch(ctx context.Context, msgs [][]byte, workers int) ([]Digest, error) {
	return Default().SumBatch(ctx, msgs, workers)
}

// SumBatch hashes each message with Sum, running up to workers messages at
// once (GOMAXPROCS when workers <= 0). Parallelism is only ever across
// messages; each message is hashed sequentially by one goroutine, so
// out[i] == d.Sum(msgs[i]) exactly.
//
// Cancelling ctx stops scheduling new messages and returns ctx's error.
func (d *Dispatcher) SumBatch(ctx context.Context, msgs [][]byte, workers int) ([]Digest, error) {
	start := time.Now()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Digest, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range msgs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.Sum(m)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	d.logger.LogBatch(ctx, len(msgs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
