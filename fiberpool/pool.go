// Package fiberpool provides a fixed-size worker pool in which each OS
// thread hosts several cooperatively-scheduled workers. Go has no native
// fiber or coroutine primitive the way the original's boost::fibers
// runtime does, so each "fiber" here is a goroutine launched by one of the
// pool's OS-thread goroutines (each of which pins itself with
// runtime.LockOSThread), cooperatively yielding the processor with
// runtime.Gosched; the fiber goroutines themselves are not pinned and run
// on the regular Go scheduler. This is the one place in the module where
// the translation from the original's concurrency model is inexact, since
// Go's scheduler can still preempt or migrate a goroutine the original's
// fiber runtime would not.
package fiberpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// State is the pool's lifecycle stage.
type State int32

const (
	Constructing State = iota
	Running
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Constructing:
		return "constructing"
	case Running:
		return "running"
	case Draining:
		return "draining"
	default:
		return "stopped"
	}
}

// Pool is a fixed-size collection of OS threads, each hosting
// nFibersPerThread cooperatively-scheduled worker goroutines pulling from a
// single shared TaskQueue. Construction blocks until every OS thread has
// pinned itself and launched its workers, mirroring the original's
// constructor-time barrier wait.
type Pool struct {
	tasks   *TaskQueue
	state   atomic.Int32
	done    atomic.Bool
	wg      sync.WaitGroup
	barrier *barrier
}

// New constructs a pool of nOSThreads OS-pinned threads, each running
// nFibersPerThread worker goroutines, and blocks until all of them have
// started. Matches the original's invariant that a pool needs at least
// two OS threads — a single-threaded pool gains nothing from pinning since
// there would be no sibling thread to share the queue with.
func New(nOSThreads, nFibersPerThread int) (*Pool, error) {
	if nOSThreads < 2 {
		return nil, fmt.Errorf("fiberpool: pool should have at least 2 OS threads, got %d", nOSThreads)
	}
	if nFibersPerThread < 1 {
		nFibersPerThread = 1
	}

	p := &Pool{
		tasks:   NewTaskQueue(),
		barrier: newBarrier(nOSThreads + 1),
	}
	p.state.Store(int32(Constructing))

	spawnSem := semaphore.NewWeighted(int64(nOSThreads))
	ctx := context.Background()

	p.wg.Add(nOSThreads)
	for i := 0; i < nOSThreads; i++ {
		if err := spawnSem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("fiberpool: %w", err)
		}
		go func(idx int) {
			defer spawnSem.Release(1)
			defer p.wg.Done()
			p.osThread(nFibersPerThread, idx)
		}(i)
	}

	p.barrier.wait()
	p.state.Store(int32(Running))
	return p, nil
}

// osThread pins the calling goroutine to its own OS thread for the
// lifetime of the pool and launches nFibersPerThread worker goroutines,
// mirroring fiber_pool::os_thread's bind-launch-barrier-wait sequence.
// runtime.LockOSThread only binds the goroutine that calls it, not
// goroutines it spawns, so the worker fibers below do not literally share
// the pinned thread the way boost::fibers shares one OS thread across many
// fibers — they run on the regular Go scheduler instead. This goroutine's
// own pinning still keeps one real OS thread reserved per pool slot for
// the barrier rendezvous and the pool's lifetime, which is as close as
// LockOSThread lets this module get to the original's thread-affinity
// model.
func (p *Pool) osThread(nFibersPerThread, idx int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var fiberWG sync.WaitGroup
	fiberWG.Add(nFibersPerThread)
	for i := 0; i < nFibersPerThread; i++ {
		go func() {
			defer fiberWG.Done()
			p.workerFiber()
		}()
	}

	p.barrier.wait()

	fiberWG.Wait()
}

// workerFiber repeatedly tries to pop a task and run it, cooperatively
// yielding the processor between attempts via runtime.Gosched, the closest
// stand-in Go offers for boost::this_fiber::yield. Ported from
// worker_fiber's try_pop/run/yield loop.
func (p *Pool) workerFiber() {
	for !p.done.Load() {
		if t, ok := p.tasks.TryPop(); ok {
			t.run()
		}
		runtime.Gosched()
	}
}

// Send enqueues fn for execution by some worker in p and returns a Future
// that resolves to fn's result, including any panic fn raises translated
// into an error. Go does not support generic methods, so Send is a
// package-level function parameterized over the task's result type rather
// than a method on Pool.
func Send[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	p.tasks.Push(&futureTask[T]{fn: fn, future: f})
	return f
}

// State reports the pool's current lifecycle stage.
func (p *Pool) State() State {
	return State(p.state.Load())
}

// PendingTasks reports the number of tasks not yet picked up by a worker.
func (p *Pool) PendingTasks() int {
	return p.tasks.Len()
}

// Shutdown stops accepting further progress and blocks until every worker
// goroutine has observed the shutdown signal and returned. Idempotent: a
// second call is a no-op, matching the original's CAS-guarded shutdown()
// that both the destructor and an explicit caller can safely invoke.
func (p *Pool) Shutdown() {
	if !p.done.CompareAndSwap(false, true) {
		return
	}
	p.state.Store(int32(Draining))
	p.wg.Wait()
	p.state.Store(int32(Stopped))
}
