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
	"github.com/twistedlog/peloton/pkg/container/types"
	"github.com/twistedlog/peloton/pkg/storage"
)

// columnInfo points one view column at a column of a physical tile.
type columnInfo struct {
	baseTile     *storage.Tile
	originColumn int
}

// LogicalTile is the read-oriented view passed between operators: an
// ordered list of column descriptors over one or more physical tiles,
// plus one row-position list shared by every descriptor.
//
// ownsBaseTiles is fixed at construction.  An owning view frees every
// distinct referenced tile exactly once when released; a non-owning
// view leaves them to their upstream owner.
type LogicalTile struct {
	columns      []columnInfo
	positionList []int

	ownsBaseTiles bool
	freed         bool
}

// NumCols returns the view's column count.
func (lt *LogicalTile) NumCols() int {
	return len(lt.columns)
}

// RowCount returns the length of the position list.
func (lt *LogicalTile) RowCount() int {
	return len(lt.positionList)
}

// OwnsBaseTiles reports whether releasing this view frees its tiles.
func (lt *LogicalTile) OwnsBaseTiles() bool {
	return lt.ownsBaseTiles
}

// GetBaseTile returns the physical tile backing view column col, nil
// when col is out of range.
func (lt *LogicalTile) GetBaseTile(col int) *storage.Tile {
	if col < 0 || col >= len(lt.columns) {
		return nil
	}
	return lt.columns[col].baseTile
}

// GetValue resolves (col, row) through the descriptor and the shared
// position list: descriptor[col].tile at position positionList[row].
func (lt *LogicalTile) GetValue(col, row int) (types.Value, error) {
	if col < 0 || col >= len(lt.columns) {
		return types.Value{}, plerr.NewIndexOutOfRange(context.TODO(), "logical tile column", col, len(lt.columns))
	}
	if row < 0 || row >= len(lt.positionList) {
		return types.Value{}, plerr.NewIndexOutOfRange(context.TODO(), "logical tile row", row, len(lt.positionList))
	}
	ci := lt.columns[col]
	return ci.baseTile.GetValue(lt.positionList[row], ci.originColumn)
}

// Free releases the view.  If the view owns its base tiles, each
// distinct tile is freed exactly once, however many descriptors
// reference it.  Free is idempotent.
func (lt *LogicalTile) Free() {
	if lt.freed {
		return
	}
	lt.freed = true
	if !lt.ownsBaseTiles {
		return
	}
	seen := make(map[*storage.Tile]struct{}, len(lt.columns))
	for _, ci := range lt.columns {
		if _, ok := seen[ci.baseTile]; ok {
			continue
		}
		seen[ci.baseTile] = struct{}{}
		ci.baseTile.Free()
	}
}
