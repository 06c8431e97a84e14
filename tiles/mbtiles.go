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
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/airbusgeo/gdalkit"

	_ "modernc.org/sqlite"
)

// MBTiles reads tiles from an mbtiles (sqlite) file
type MBTiles struct {
	db      *sql.DB
	format  string
	minZoom int
	maxZoom int
	bounds  gdalkit.Bounds
}

var _ Source = &MBTiles{}
var _ Formatter = &MBTiles{}

// OpenMBTiles opens path and loads its metadata table
func OpenMBTiles(path string) (*MBTiles, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	m := &MBTiles{
		db:      db,
		format:  "png",
		minZoom: 0,
		maxZoom: MaxZoom,
		bounds:  gdalkit.Bounds{-180, -85.051129, 180, 85.051129},
	}
	if err := m.loadMetadata(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load metadata of %s: %w", path, err)
	}
	return m, nil
}

func (m *MBTiles) loadMetadata() error {
	rows, err := m.db.Query(`SELECT name, value FROM metadata`)
	if err != nil {
		return fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("scan metadata: %w", err)
		}
		switch name {
		case "format":
			m.format = value
		case "minzoom":
			if z, err := strconv.Atoi(value); err == nil {
				m.minZoom = z
			}
		case "maxzoom":
			if z, err := strconv.Atoi(value); err == nil {
				m.maxZoom = z
			}
		case "bounds":
			// lonlat "left,bottom,right,top"
			f := strings.Split(value, ",")
			if len(f) == 4 {
				b := gdalkit.Bounds{}
				ok := true
				for i := range f {
					b[i], err = strconv.ParseFloat(strings.TrimSpace(f[i]), 64)
					if err != nil {
						ok = false
						break
					}
				}
				if ok {
					m.bounds = b
				}
			}
		}
	}
	return rows.Err()
}

// Format returns the tile image format declared in the metadata table
func (m *MBTiles) Format() string {
	return m.format
}

// ZoomRange returns the declared minzoom and maxzoom
func (m *MBTiles) ZoomRange() (int, int) {
	return m.minZoom, m.maxZoom
}

// LonLatBounds returns the declared data extent in EPSG:4326
func (m *MBTiles) LonLatBounds() gdalkit.Bounds {
	return m.bounds
}

// ReadTile implements Source. mbtiles rows are stored in the TMS scheme, the
// XYZ row is flipped before querying.
func (m *MBTiles) ReadTile(ctx context.Context, t Tile) ([]byte, error) {
	if !t.Valid() {
		return nil, errInvalidTile(t)
	}
	tmsY := (1<<uint(t.Z) - 1) - t.Y
	var data []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT tile_data FROM tiles WHERE zoom_level=? AND tile_column=? AND tile_row=?`,
		t.Z, t.X, tmsY).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errNotFound(t)
	}
	if err != nil {
		return nil, fmt.Errorf("query tile %s: %w", t, err)
	}
	return data, nil
}

// Close releases the underlying sqlite handle
func (m *MBTiles) Close() error {
	return m.db.Close()
}
