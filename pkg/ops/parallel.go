package ops

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/williamokano/s3meta/pkg/storage"
)

// runParallel uploads jobs with at most concurrency in flight. Outcomes keep
// job order; jobs that never ran are left out. The first fatal error cancels
// the remaining jobs.
func runParallel(ctx context.Context, store storage.Store, bucket string, jobs []uploadJob, concurrency int, log zerolog.Logger) ([]uploadOutcome, error) {
	// Create semaphore for concurrency control
	sem := semaphore.NewWeighted(int64(concurrency))

	// Create errgroup for structured concurrency
	g, gCtx := errgroup.WithContext(ctx)

	outcomes := make([]uploadOutcome, len(jobs))
	done := make([]bool, len(jobs))

	launched := 0
	for i, job := range jobs {
		i, job := i, job // per-iteration copies for Go < 1.22 loop semantics
		// Acquire fails once gCtx is cancelled, which stops launching
		if err := sem.Acquire(gCtx, 1); err != nil {
			break
		}
		launched++

		g.Go(func() error {
			defer sem.Release(1)

			outcome, err := uploadOne(gCtx, store, bucket, job, log)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	waitErr := g.Wait()
	if waitErr == nil && launched < len(jobs) {
		// Acquire can only fail on cancellation of the parent context
		waitErr = ctx.Err()
	}

	finished := make([]uploadOutcome, 0, len(jobs))
	for i := range jobs {
		if done[i] {
			finished = append(finished, outcomes[i])
		}
	}

	return finished, waitErr
}
