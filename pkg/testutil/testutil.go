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

// Package testutil builds the storage fixtures shared by storage and
// executor tests.
package testutil

import (
	"strconv"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/mpool"
	"github.com/twistedlog/peloton/pkg/container/types"
	"github.com/twistedlog/peloton/pkg/storage"
)

// TestPool returns an unbounded pool for tests.
func TestPool() *mpool.MPool {
	mp, err := mpool.NewMPool("test", mpool.NoFixed)
	if err != nil {
		panic(err)
	}
	return mp
}

// NewSimpleTileGroup builds a two-tile group: tile 0 holds
// {col_a INT, col_b INT}, tile 1 holds {col_c TINYINT, col_d
// VARCHAR(25)}.
func NewSimpleTileGroup(mgr *catalog.Manager, tupleCapacity int, mp *mpool.MPool) (*storage.TileGroup, error) {
	schema1 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_a", types.New(types.T_int, 0)),
		catalog.NewColumn("col_b", types.New(types.T_int, 0)),
	})
	schema2 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_c", types.New(types.T_tinyint, 0)),
		catalog.NewColumn("col_d", types.New(types.T_varchar, 25)),
	})
	return storage.NewTileGroup(mgr, []*catalog.Schema{schema1, schema2}, tupleCapacity, mp)
}

// PopulateTileGroup inserts numRows tuples where row i holds
// (10i, 10i+1, 10i+2, "10i+3").
func PopulateTileGroup(tg *storage.TileGroup, numRows int) error {
	schema := catalog.Append(tg.GetTileSchemas())
	for i := 0; i < numRows; i++ {
		tup := storage.NewTuple(schema)
		if err := tup.SetValue(0, types.NewIntegerValue(int32(10*i))); err != nil {
			return err
		}
		if err := tup.SetValue(1, types.NewIntegerValue(int32(10*i+1))); err != nil {
			return err
		}
		if err := tup.SetValue(2, types.NewTinyIntValue(int8(10*i+2))); err != nil {
			return err
		}
		if err := tup.SetValue(3, types.NewStringValue(strconv.Itoa(10*i+3))); err != nil {
			return err
		}
		if _, err := tg.InsertTuple(tup); err != nil {
			return err
		}
	}
	return nil
}
