package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the serializer's context is done.
var ErrStopped = errors.New("serializer stopped")

const (
	jobQueued int32 = iota
	jobClaimed
	jobAbandoned
)

type job struct {
	ctx   context.Context
	key   string
	fn    func(ctx context.Context) error
	done  chan error
	state *atomic.Int32
}

// claim marks a queued job as taken by a worker. It fails once Do has given
// up on the job.
func (j job) claim() bool {
	return j.state.CompareAndSwap(jobQueued, jobClaimed)
}

func (j job) abandon() bool {
	return j.state.CompareAndSwap(jobQueued, jobAbandoned)
}

// Serializer routes work to a fixed set of workers using consistent hashing
// on a key, so all work for one key runs sequentially on one goroutine.
type Serializer struct {
	workers []chan job
	stopped chan struct{}
	log     zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
// Do must not be called before Start.
func (s *Serializer) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(s.stopped)
	}()
}

// Do runs fn on the worker owning key and waits for it to finish. Once a
// worker has claimed fn, Do waits for its result even if ctx is cancelled or
// the serializer stops, so a caller never misses a committed effect. Jobs
// still queued when the serializer stops are dropped with ErrStopped.
func (s *Serializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1), state: new(atomic.Int32)}

	select {
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	case s.workers[s.shardIndex(key)] <- j:
	}

	select {
	case err := <-j.done:
		return err
	case <-s.stopped:
		if j.abandon() {
			return ErrStopped
		}
		return <-j.done
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			if j.claim() {
				j.done <- s.run(id, j)
			}
		}
	}
}

func (s *Serializer) run(id int, j job) (err error) {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("key", j.key).Int("worker_id", id).Msg("serialized job panicked")
			err = fmt.Errorf("serialized job panicked: %v", r)
		}
	}()
	return j.fn(j.ctx)
}
