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
	"fmt"

	"github.com/airbusgeo/gdalkit"
)

// Source provides raw tile payloads.
//
// ReadTile returns the payload of t. Requests for tiles absent from the
// underlying store fail with an error wrapping
// gdalkit.OGRERR_NON_EXISTING_FEATURE, which can be tested with IsNotFound.
type Source interface {
	ReadTile(ctx context.Context, t Tile) ([]byte, error)
}

// Formatter is implemented by Sources that know the image format of their
// payloads (e.g. "png", "jpg", "pbf")
type Formatter interface {
	Format() string
}

// IsNotFound returns wether err denotes a tile absent from its source
func IsNotFound(err error) bool {
	return errors.Is(err, gdalkit.OGRERR_NON_EXISTING_FEATURE)
}

func errNotFound(t Tile) error {
	return fmt.Errorf("tile %s: %w", t, gdalkit.OGRERR_NON_EXISTING_FEATURE)
}

func errInvalidTile(t Tile) error {
	return fmt.Errorf("invalid tile coordinates %s: %w", t, gdalkit.OGRERR_FAILURE)
}
