// Copyright 2023 twistedlog
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/mpool"
	"github.com/twistedlog/peloton/pkg/common/plerr"
)

// columnLocation resolves an overall tuple ordinal to a member tile
// and the column ordinal inside it.
type columnLocation struct {
	tile   int
	column int
}

// TileGroup vertically partitions one row schema across an ordered
// set of tiles.  All member tiles share the tuple capacity and the
// row-id space: row i denotes the same logical tuple in every tile.
// The tile group owns its tiles.
type TileGroup struct {
	oid     uint64
	schemas []*catalog.Schema
	tiles   []*Tile

	columnMap []columnLocation

	tupleCapacity int
	tupleCount    int

	freed bool
}

// NewTileGroup allocates one tile per schema, all sized to
// tupleCapacity rows out of pool mp, and registers the group with the
// metadata directory.
func NewTileGroup(mgr *catalog.Manager, schemas []*catalog.Schema, tupleCapacity int, mp *mpool.MPool) (*TileGroup, error) {
	tg := &TileGroup{
		schemas:       schemas,
		tupleCapacity: tupleCapacity,
	}
	for ti, sch := range schemas {
		tile, err := NewTile(sch, tupleCapacity, mp)
		if err != nil {
			for _, built := range tg.tiles {
				built.Free()
			}
			return nil, err
		}
		tg.tiles = append(tg.tiles, tile)
		for ci := 0; ci < sch.GetColumnCount(); ci++ {
			tg.columnMap = append(tg.columnMap, columnLocation{tile: ti, column: ci})
		}
	}
	if mgr != nil {
		tg.oid = mgr.NextOid()
		mgr.SetLocation(tg.oid, tg)
	}
	return tg, nil
}

func (tg *TileGroup) Oid() uint64 {
	return tg.oid
}

// GetTile returns the i-th member tile, nil when i is out of range.
// The tile remains owned by the group.
func (tg *TileGroup) GetTile(i int) *Tile {
	if i < 0 || i >= len(tg.tiles) {
		return nil
	}
	return tg.tiles[i]
}

func (tg *TileGroup) GetTileCount() int {
	return len(tg.tiles)
}

// GetTileSchemas returns the ordered per-tile schema list; consumers
// rebuild the combined row schema with catalog.Append.
func (tg *TileGroup) GetTileSchemas() []*catalog.Schema {
	return tg.schemas
}

func (tg *TileGroup) GetColumnCount() int {
	return len(tg.columnMap)
}

func (tg *TileGroup) GetTupleCount() int {
	return tg.tupleCount
}

func (tg *TileGroup) GetTupleCapacity() int {
	return tg.tupleCapacity
}

// InsertTuple distributes the tuple's values across the member tiles
// per the stored column partitioning and returns the assigned row
// slot.  A full group fails with ErrCapacityExceeded; the caller must
// obtain a new tile group.
func (tg *TileGroup) InsertTuple(tup *Tuple) (int, error) {
	if tup.ColumnCount() != len(tg.columnMap) {
		return 0, plerr.NewContractViolation(context.TODO(),
			"tuple width %d, tile group width %d", tup.ColumnCount(), len(tg.columnMap))
	}
	if tg.tupleCount >= tg.tupleCapacity {
		return 0, plerr.NewCapacityExceeded(context.TODO(),
			"tile group %d full at %d tuples", tg.oid, tg.tupleCapacity)
	}
	slot := tg.tupleCount
	for ord, loc := range tg.columnMap {
		v, err := tup.GetValue(ord)
		if err != nil {
			return 0, err
		}
		if err := tg.tiles[loc.tile].SetValue(slot, loc.column, v); err != nil {
			return 0, err
		}
	}
	tg.tupleCount++
	return slot, nil
}

// Free releases every member tile.  Called by the table-storage layer
// that owns the group.
func (tg *TileGroup) Free() {
	if tg.freed {
		return
	}
	tg.freed = true
	for _, tile := range tg.tiles {
		tile.Free()
	}
}
