// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workqueue distributes work units to a fixed pool of workers.
package workqueue

import "sync"

type unit[A, R any] struct {
	arg A
	out chan<- R
}

// Queue fans work units out to a fixed pool of worker goroutines. Push
// enqueues a unit and returns a channel carrying its result. A Queue must be
// shut down with Halt once no more work will be pushed.
type Queue[A, R any] struct {
	work chan unit[A, R]
	wg   sync.WaitGroup
	once sync.Once
}

// New starts workers goroutines applying fn to pushed work units
func New[A, R any](workers int, fn func(A) R) *Queue[A, R] {
	if workers < 1 {
		workers = 1
	}
	q := &Queue[A, R]{work: make(chan unit[A, R])}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for wu := range q.work {
				wu.out <- fn(wu.arg)
			}
		}()
	}
	return q
}

// Push enqueues arg, blocking until a worker picks it up, and returns a
// buffered channel that will receive the result. Push must not be called
// after Halt.
func (q *Queue[A, R]) Push(arg A) <-chan R {
	out := make(chan R, 1)
	q.work <- unit[A, R]{arg: arg, out: out}
	return out
}

// Halt stops the workers once all pushed work has been executed, and waits
// for them to exit. Halt is idempotent.
func (q *Queue[A, R]) Halt() {
	q.once.Do(func() { close(q.work) })
	q.wg.Wait()
}
