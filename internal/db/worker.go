package db

import (
	"context"
	"database/sql"
)

// writerQueueDepth bounds how many append jobs can be waiting on the writer
// before callers start blocking. Swipe bursts from a handful of turnstiles
// are tiny; 256 is far more headroom than the hardware can generate.
const writerQueueDepth = 256

type TxFn func(ctx context.Context, tx *sql.Tx) error

type job struct {
	ctx context.Context
	fn  TxFn
	ch  chan error
}

// Worker serializes all write transactions through a single goroutine, which
// is what keeps audit-log id assignment gap-free under concurrent swipes and
// keeps SQLite happy with exactly one writer.
type Worker struct {
	conn *sql.DB
	jobs chan job
	done chan struct{}
}

func NewWorker(conn *sql.DB) *Worker {
	w := &Worker{
		conn: conn,
		jobs: make(chan job, writerQueueDepth),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) Close() {
	close(w.jobs)
	<-w.done
}

// Do runs fn inside a write transaction on the writer goroutine and waits for
// the result. If the caller's context expires while the job is queued or
// executing, Do returns early with ctx.Err() but the transaction itself is
// NOT rolled back — an audit append that already reached the writer commits,
// and only the response is suppressed.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	ch := make(chan error, 1)
	j := job{ctx: ctx, fn: fn, ch: ch}

	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		// The worker loop still completes the transaction; the result lands
		// in the buffered ch and is discarded.
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer close(w.done)

	for j := range w.jobs {
		tx, err := w.conn.BeginTx(j.ctx, nil)
		if err != nil {
			j.ch <- err
			continue
		}

		if err := j.fn(j.ctx, tx); err != nil {
			_ = tx.Rollback()
			j.ch <- err
			continue
		}

		j.ch <- tx.Commit()
	}
}
