// File: pkg/chunker/worker.go
package chunker

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// loadBatchFactor bounds how many loaded files wait for re-sequencing.
const loadBatchFactor = 8

// loadResult is the outcome of loading one candidate.
type loadResult struct {
	path string
	rec  TextRecord
	err  error
}

// loadInOrder loads every path and hands results to fn strictly in input
// order. With more than one worker, each batch is loaded concurrently into
// index-addressed slots and then drained in order. fn's error stops the run.
func loadInOrder(paths []string, loader *Loader, workers int, logger *zap.Logger, fn func(loadResult) error) error {
	if workers <= 1 {
		for _, p := range paths {
			rec, err := loader.Load(p)
			if err := fn(loadResult{path: p, rec: rec, err: err}); err != nil {
				return err
			}
		}
		return nil
	}

	logger.Debug("Initializing loader pool", zap.Int("workers", workers))
	batchSize := workers * loadBatchFactor
	slots := make([]loadResult, batchSize)

	for start := 0; start < len(paths); start += batchSize {
		end := min(start+batchSize, len(paths))
		batch := slots[:end-start]

		var g errgroup.Group
		g.SetLimit(workers)
		for i, p := range paths[start:end] {
			g.Go(func() error {
				rec, err := loader.Load(p)
				batch[i] = loadResult{path: p, rec: rec, err: err}
				return nil
			})
		}
		// Load errors travel in the slots; the group only bounds concurrency.
		g.Wait()

		for i := range batch {
			if err := fn(batch[i]); err != nil {
				return err
			}
			batch[i] = loadResult{}
		}
	}
	return nil
}
