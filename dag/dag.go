// Package dag schedules a directed acyclic graph of per-node computations
// across a fixed pool of workers, running each node the moment every
// dependency it names has finished rather than in fixed breadth-first
// waves. It is the shared driver behind the LIN and LZ evaluators, which
// both walk a circuit's gate DAG and previously (per original_source) only
// parallelized the leaf gates, leaving nthreads unused once evaluation
// reached internal nodes.
package dag

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dendisuhubdy/circ-obfuscation/utils/concurrency"
)

// DepsFunc returns the indices node i directly depends on. The slice order
// determines the order ComputeFunc receives the corresponding values in.
type DepsFunc func(i int) []int

// ComputeFunc computes node i's value given the already-computed values of
// its dependencies, in the order DepsFunc(i) listed them.
type ComputeFunc[V any] func(i int, deps []V) (V, error)

// Run schedules nodes 0..n-1 across nthreads workers respecting the
// dependency order deps describes, returning each node's computed value
// indexed by node number. The first error returned by compute aborts the
// run; Run returns that error.
func Run[V any](n int, deps DepsFunc, compute ComputeFunc[V], nthreads int) ([]V, error) {
	if n == 0 {
		return nil, nil
	}
	if nthreads < 1 {
		nthreads = 1
	}

	nodeDeps := make([][]int, n)
	indegree := make([]int32, n)
	dependents := make([][]int, n)
	for i := 0; i < n; i++ {
		nodeDeps[i] = deps(i)
		indegree[i] = int32(len(nodeDeps[i]))
		for _, d := range nodeDeps[i] {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dag: node %d depends on out-of-range index %d", i, d)
			}
			dependents[d] = append(dependents[d], i)
		}
	}

	results := make([]V, n)
	ready := make(chan int, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			ready <- i
		}
	}

	rm := concurrency.NewRessourceManager(make([]struct{}, nthreads))

	// A failed node's descendants never reach indegree zero, so dispatch
	// must stop as soon as any node errors rather than waiting for n
	// dequeues from ready that will now never all arrive.
	aborted := make(chan struct{})
	var abortOnce sync.Once

dispatch:
	for processed := 0; processed < n; processed++ {
		var i int
		select {
		case i = <-ready:
		case <-aborted:
			break dispatch
		}
		inputs := make([]V, len(nodeDeps[i]))
		for k, d := range nodeDeps[i] {
			inputs[k] = results[d]
		}
		rm.Run(func(struct{}) error {
			v, err := compute(i, inputs)
			if err != nil {
				abortOnce.Do(func() { close(aborted) })
				return fmt.Errorf("dag: node %d: %w", i, err)
			}
			results[i] = v
			for _, dep := range dependents[i] {
				if atomic.AddInt32(&indegree[dep], -1) == 0 {
					ready <- dep
				}
			}
			return nil
		})
	}

	if err := rm.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
