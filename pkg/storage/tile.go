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
	"github.com/twistedlog/peloton/pkg/container/nulls"
	"github.com/twistedlog/peloton/pkg/container/types"
)

// Tile is a physical storage block: a fixed number of row slots laid
// out per one schema with a uniform byte stride.  Inlined values live
// in the row itself; uninlined values live in separate pool
// allocations referenced from the row by a (handle, length) slot, so
// a tile never aliases a caller's buffer past the write that supplied
// it.
//
// A tile is owned by exactly one party at a time, its tile group or a
// logical tile that claimed it.  The owner calls Free exactly once.
type Tile struct {
	schema *catalog.Schema
	mp     *mpool.MPool

	// data holds numTupleSlots rows of stride bytes each.
	data   []byte
	stride int32

	numTupleSlots int

	// varBufs maps handle-1 to a pool allocation holding one
	// uninlined payload.  Handle 0 in a row slot means the empty
	// payload.
	varBufs [][]byte

	// columnNulls[i] marks the NULL rows of column i.
	columnNulls []nulls.Nulls

	freed bool
}

// NewTile allocates a tile with capacity row slots laid out per
// schema.  Allocation failure surfaces the pool's ErrOOM; nothing
// stays charged in that case.
func NewTile(schema *catalog.Schema, capacity int, mp *mpool.MPool) (*Tile, error) {
	if capacity <= 0 {
		return nil, plerr.NewInvalidInput(context.TODO(), "tile capacity %d", capacity)
	}
	stride := schema.FixedLength()
	data, err := mp.Alloc(capacity * int(stride))
	if err != nil {
		return nil, err
	}
	return &Tile{
		schema:        schema,
		mp:            mp,
		data:          data,
		stride:        stride,
		numTupleSlots: capacity,
		columnNulls:   make([]nulls.Nulls, schema.GetColumnCount()),
	}, nil
}

// GetSchema returns the tile's layout descriptor, fixed for the
// tile's lifetime.
func (t *Tile) GetSchema() *catalog.Schema {
	return t.schema
}

func (t *Tile) GetTupleCapacity() int {
	return t.numTupleSlots
}

func (t *Tile) Pool() *mpool.MPool {
	return t.mp
}

func (t *Tile) checkBounds(row, col int) error {
	if row < 0 || row >= t.numTupleSlots {
		return plerr.NewIndexOutOfRange(context.TODO(), "tile row", row, t.numTupleSlots)
	}
	if col < 0 || col >= t.schema.GetColumnCount() {
		return plerr.NewIndexOutOfRange(context.TODO(), "tile column", col, t.schema.GetColumnCount())
	}
	return nil
}

func (t *Tile) slot(row, col int) []byte {
	c := t.schema.GetColumn(col)
	base := int32(row)*t.stride + c.Offset
	return t.data[base : base+c.FixedLength()]
}

// GetValue reads the value at (row, col).  Uninlined payloads are
// copied out; the returned value never references tile storage.
func (t *Tile) GetValue(row, col int) (types.Value, error) {
	if err := t.checkBounds(row, col); err != nil {
		return types.Value{}, err
	}
	oid := t.schema.GetColumn(col).Type.Oid
	if t.columnNulls[col].Contains(uint32(row)) {
		return types.NewNullValue(oid), nil
	}
	buf := t.slot(row, col)
	if oid != types.T_varchar {
		return types.DecodeFixed(oid, buf), nil
	}
	handle, length := types.DecodeVarlenSlot(buf)
	if handle == 0 || length == 0 {
		return types.NewStringValue(""), nil
	}
	return types.NewVarcharValue(t.varBufs[handle-1][:length]), nil
}

// SetValue writes v at (row, col).  An uninlined payload is deep
// copied into this tile's own pool; the caller's buffer may be freed
// the moment the call returns.
func (t *Tile) SetValue(row, col int, v types.Value) error {
	if err := t.checkBounds(row, col); err != nil {
		return err
	}
	c := t.schema.GetColumn(col)
	if v.IsNull() {
		t.columnNulls[col].Set(uint32(row))
		return nil
	}
	if v.Oid() != c.Type.Oid {
		return plerr.NewInvalidInput(context.TODO(),
			"tile column %s: writing %s value", c.Type, v.Oid())
	}
	t.columnNulls[col].Del(uint32(row))
	buf := t.slot(row, col)
	if c.Inlined {
		types.EncodeFixed(v, buf)
		return nil
	}
	payload := v.GetBytes()
	if len(payload) == 0 {
		types.EncodeVarlenSlot(buf, 0, 0)
		return nil
	}
	nb, err := t.mp.Alloc(len(payload))
	if err != nil {
		return err
	}
	copy(nb, payload)
	// a replaced payload stays charged until the tile is freed
	t.varBufs = append(t.varBufs, nb)
	types.EncodeVarlenSlot(buf, uint32(len(t.varBufs)), uint32(len(payload)))
	return nil
}

// ColumnNullCount reports the NULL count of one column.
func (t *Tile) ColumnNullCount(col int) int {
	if col < 0 || col >= len(t.columnNulls) {
		return 0
	}
	return t.columnNulls[col].Count()
}

// Free releases every pool allocation backing this tile.  Only the
// single owner calls it; calling it twice is a no-op.
func (t *Tile) Free() {
	if t.freed {
		return
	}
	t.freed = true
	for _, b := range t.varBufs {
		t.mp.Free(b)
	}
	t.varBufs = nil
	t.mp.Free(t.data)
	t.data = nil
}
