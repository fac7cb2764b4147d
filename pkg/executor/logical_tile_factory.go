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

package executor

import (
	"context"

	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/storage"
)

// WrapTiles builds an identity view over the given tiles: one
// descriptor per column of each tile in order, and an identity
// position list sized to the common row capacity.  The tiles must
// agree on row capacity; disagreement is a contract violation.
//
// When owns is true the new view takes ownership and will free the
// tiles on release.
func WrapTiles(tiles []*storage.Tile, owns bool) (*LogicalTile, error) {
	if len(tiles) == 0 {
		return nil, plerr.NewContractViolation(context.TODO(), "wrapping zero tiles")
	}
	rowCount := tiles[0].GetTupleCapacity()
	var columns []columnInfo
	for _, tile := range tiles {
		if tile.GetTupleCapacity() != rowCount {
			return nil, plerr.NewContractViolation(context.TODO(),
				"wrapped tiles disagree on row count: %d vs %d",
				rowCount, tile.GetTupleCapacity())
		}
		for ci := 0; ci < tile.GetSchema().GetColumnCount(); ci++ {
			columns = append(columns, columnInfo{baseTile: tile, originColumn: ci})
		}
	}
	positions := make([]int, rowCount)
	for i := range positions {
		positions[i] = i
	}
	return &LogicalTile{
		columns:       columns,
		positionList:  positions,
		ownsBaseTiles: owns,
	}, nil
}

// WrapTileGroup builds a non-owning identity view over every tile of
// the group; the group keeps ownership.  The view spans the group's
// active tuples, not its slot capacity, so a partially filled group
// never exposes unwritten rows.
func WrapTileGroup(tg *storage.TileGroup) (*LogicalTile, error) {
	tiles := make([]*storage.Tile, tg.GetTileCount())
	for i := range tiles {
		tiles[i] = tg.GetTile(i)
	}
	lt, err := WrapTiles(tiles, false)
	if err != nil {
		return nil, err
	}
	lt.positionList = lt.positionList[:tg.GetTupleCount()]
	return lt, nil
}
