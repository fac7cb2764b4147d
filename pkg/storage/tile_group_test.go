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
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/container/types"
)

// two tiles: {col_a INT, col_b INT} and {col_c TINYINT, col_d VARCHAR}
func newTestTileGroup(t *testing.T, capacity int) (*TileGroup, *catalog.Manager) {
	mgr := catalog.NewManager()
	schema1 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_a", types.New(types.T_int, 0)),
		catalog.NewColumn("col_b", types.New(types.T_int, 0)),
	})
	schema2 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_c", types.New(types.T_tinyint, 0)),
		catalog.NewColumn("col_d", types.New(types.T_varchar, 25)),
	})
	tg, err := NewTileGroup(mgr, []*catalog.Schema{schema1, schema2}, capacity, newTestPool(t))
	require.NoError(t, err)
	return tg, mgr
}

func TestTileGroupInsertDistributesColumns(t *testing.T) {
	tg, mgr := newTestTileGroup(t, 8)
	defer mgr.Close()
	defer tg.Free()

	require.Equal(t, 2, tg.GetTileCount())
	require.Equal(t, 4, tg.GetColumnCount())

	schema := catalog.Append(tg.GetTileSchemas())
	for i := 0; i < 3; i++ {
		tup := NewTuple(schema)
		require.NoError(t, tup.SetValue(0, types.NewIntegerValue(int32(10*i))))
		require.NoError(t, tup.SetValue(1, types.NewIntegerValue(int32(10*i+1))))
		require.NoError(t, tup.SetValue(2, types.NewTinyIntValue(int8(10*i+2))))
		require.NoError(t, tup.SetValue(3, types.NewStringValue(strconv.Itoa(10*i+3))))
		slot, err := tg.InsertTuple(tup)
		require.NoError(t, err)
		require.Equal(t, i, slot)
	}
	require.Equal(t, 3, tg.GetTupleCount())

	// col_b is column 1 of tile 0, col_d column 1 of tile 1
	for i := 0; i < 3; i++ {
		v, err := tg.GetTile(0).GetValue(i, 1)
		require.NoError(t, err)
		require.Equal(t, int64(10*i+1), v.GetInt64())

		v, err = tg.GetTile(1).GetValue(i, 1)
		require.NoError(t, err)
		require.Equal(t, strconv.Itoa(10*i+3), v.GetString())
	}
}

func TestTileGroupCapacityExceeded(t *testing.T) {
	tg, mgr := newTestTileGroup(t, 2)
	defer mgr.Close()
	defer tg.Free()

	schema := catalog.Append(tg.GetTileSchemas())
	for i := 0; i < 2; i++ {
		tup := NewTuple(schema)
		require.NoError(t, tup.SetValue(0, types.NewIntegerValue(int32(i))))
		_, err := tg.InsertTuple(tup)
		require.NoError(t, err)
	}

	tup := NewTuple(schema)
	_, err := tg.InsertTuple(tup)
	require.True(t, plerr.IsErrCode(err, plerr.ErrCapacityExceeded))
	require.Equal(t, 2, tg.GetTupleCount())
}

func TestTileGroupTupleWidthMismatch(t *testing.T) {
	tg, mgr := newTestTileGroup(t, 2)
	defer mgr.Close()
	defer tg.Free()

	narrow := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("only", types.New(types.T_int, 0)),
	})
	_, err := tg.InsertTuple(NewTuple(narrow))
	require.True(t, plerr.IsErrCode(err, plerr.ErrContractViolation))
}

func TestTileGroupDirectoryRegistration(t *testing.T) {
	tg, mgr := newTestTileGroup(t, 2)
	defer mgr.Close()
	defer tg.Free()

	require.NotEqual(t, catalog.InvalidOid, tg.Oid())
	require.Equal(t, tg, mgr.GetLocation(tg.Oid()))
}

func TestTileGroupGetTileOutOfRange(t *testing.T) {
	tg, mgr := newTestTileGroup(t, 2)
	defer mgr.Close()
	defer tg.Free()

	require.Nil(t, tg.GetTile(2))
	require.Nil(t, tg.GetTile(-1))
}
