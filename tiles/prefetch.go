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

package tiles

import (
	"context"
	"errors"

	"github.com/airbusgeo/gdalkit/internal/workqueue"
)

var errMissing = errors.New("missing tile")

// Prefetch reads every tile of zoom levels zmin through zmax from src using
// a pool of workers, typically to warm a Cache wrapping it. Missing tiles
// are skipped. It returns the number of tiles fetched and the first error
// encountered, if any.
func Prefetch(ctx context.Context, src Source, zmin, zmax, workers int) (int, error) {
	if zmin < 0 {
		zmin = 0
	}
	q := workqueue.New(workers, func(t Tile) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := src.ReadTile(ctx, t)
		if IsNotFound(err) {
			return errMissing
		}
		return err
	})
	defer q.Halt()

	var promises []<-chan error
	for z := zmin; z <= zmax; z++ {
		n := 1 << uint(z)
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				promises = append(promises, q.Push(Tile{Z: z, X: x, Y: y}))
			}
		}
	}
	fetched := 0
	var firstErr error
	for _, p := range promises {
		switch err := <-p; {
		case err == nil:
			fetched++
		case errors.Is(err, errMissing):
		case firstErr == nil:
			firstErr = err
		}
	}
	return fetched, firstErr
}
