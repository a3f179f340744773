// Package jobs implements the background job scheduler used by asset loaders.
//
// A Pool runs scheduled closures on a fixed set of worker goroutines. Work is
// queued in three priority bands; the high band is always drained before the
// normal band, which is drained before the low band.
//
// # Futures
//
// Schedule returns a Future, a shared, copyable view of the job result.
// Futures can be waited on, escalated (ChangePriority) and counted
// (Share/Release/UseCount) so that owners can detect references that outlive
// them.
//
// # Cancellation
//
// Stop is best effort. A queued task is removed and its future resolves with
// ErrStopped. A running task only has its context cancelled; it may still
// run to completion.
//
// # Usage
//
//	pool, _ := jobs.NewPool(jobs.Config{Workers: 4}, logger)
//	f := jobs.Schedule(pool, "decode", func(ctx context.Context) (*Texture, error) {
//	    return decode(ctx, path)
//	})
//	tex, err := f.Wait(ctx)
package jobs
