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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/mpool"
	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/container/types"
)

func newTestSchema() *catalog.Schema {
	return catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("id", types.New(types.T_int, 0)),
		catalog.NewColumn("name", types.New(types.T_varchar, 25)),
		catalog.NewColumn("score", types.New(types.T_double, 0)),
	})
}

func newTestPool(t *testing.T) *mpool.MPool {
	mp, err := mpool.NewMPool("storage-test", mpool.NoFixed)
	require.NoError(t, err)
	return mp
}

func TestTileSetGetRoundTrip(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 16, mp)
	require.NoError(t, err)
	defer tile.Free()

	require.NoError(t, tile.SetValue(3, 0, types.NewIntegerValue(42)))
	require.NoError(t, tile.SetValue(3, 1, types.NewStringValue("hello tile")))
	require.NoError(t, tile.SetValue(3, 2, types.NewDoubleValue(9.5)))

	v, err := tile.GetValue(3, 0)
	require.NoError(t, err)
	require.Equal(t, int64(42), v.GetInt64())

	v, err = tile.GetValue(3, 1)
	require.NoError(t, err)
	require.Equal(t, "hello tile", v.GetString())

	v, err = tile.GetValue(3, 2)
	require.NoError(t, err)
	require.Equal(t, 9.5, v.GetDouble())

	// untouched slots in another row decode as zero values
	v, err = tile.GetValue(4, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), v.GetInt64())
}

func TestTileBoundsChecks(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 8, mp)
	require.NoError(t, err)
	defer tile.Free()

	_, err = tile.GetValue(8, 0)
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))
	_, err = tile.GetValue(-1, 0)
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))
	_, err = tile.GetValue(0, 3)
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))

	err = tile.SetValue(8, 0, types.NewIntegerValue(1))
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))
	err = tile.SetValue(0, 3, types.NewIntegerValue(1))
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))
}

func TestTileVarlenDeepCopy(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 4, mp)
	require.NoError(t, err)
	defer tile.Free()

	buf := []byte("mutable")
	require.NoError(t, tile.SetValue(0, 1, types.NewVarcharValue(buf)))
	// the caller's buffer may be scribbled on immediately
	for i := range buf {
		buf[i] = 'X'
	}
	v, err := tile.GetValue(0, 1)
	require.NoError(t, err)
	require.Equal(t, "mutable", v.GetString())

	// reads copy out as well: mutating the returned value must not
	// affect the tile
	v.GetBytes()[0] = 'Z'
	v2, err := tile.GetValue(0, 1)
	require.NoError(t, err)
	require.Equal(t, "mutable", v2.GetString())
}

func TestTileNulls(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 4, mp)
	require.NoError(t, err)
	defer tile.Free()

	require.NoError(t, tile.SetValue(1, 0, types.NewNullValue(types.T_int)))
	v, err := tile.GetValue(1, 0)
	require.NoError(t, err)
	require.True(t, v.IsNull())
	require.Equal(t, 1, tile.ColumnNullCount(0))

	// overwrite clears the null bit
	require.NoError(t, tile.SetValue(1, 0, types.NewIntegerValue(7)))
	v, err = tile.GetValue(1, 0)
	require.NoError(t, err)
	require.False(t, v.IsNull())
	require.Equal(t, int64(7), v.GetInt64())
	require.Equal(t, 0, tile.ColumnNullCount(0))
}

func TestTileTypeMismatch(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 4, mp)
	require.NoError(t, err)
	defer tile.Free()

	err = tile.SetValue(0, 0, types.NewStringValue("not an int"))
	require.True(t, plerr.IsErrCode(err, plerr.ErrInvalidInput))
}

func TestTileOOM(t *testing.T) {
	mp, err := mpool.NewMPool("tiny", 64)
	require.NoError(t, err)

	_, err = NewTile(newTestSchema(), 1024, mp)
	require.True(t, plerr.IsErrCode(err, plerr.ErrOOM))
	require.Equal(t, int64(0), mp.CurrNB())
}

func TestTileFreeReturnsPoolBytes(t *testing.T) {
	mp := newTestPool(t)
	tile, err := NewTile(newTestSchema(), 8, mp)
	require.NoError(t, err)
	require.NoError(t, tile.SetValue(0, 1, types.NewStringValue("payload")))
	require.Greater(t, mp.CurrNB(), int64(0))

	tile.Free()
	tile.Free() // second free is a no-op
	require.Equal(t, int64(0), mp.CurrNB())
}
