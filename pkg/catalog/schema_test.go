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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/container/types"
)

func testColumns() []Column {
	return []Column{
		NewColumn("id", types.New(types.T_int, 0), Constraint{Typ: ConstraintPrimaryKey}),
		NewColumn("flag", types.New(types.T_tinyint, 0)),
		NewColumn("name", types.New(types.T_varchar, 32)),
		NewColumn("score", types.New(types.T_double, 0)),
	}
}

func TestSchemaLayout(t *testing.T) {
	s := NewSchema(testColumns())

	require.Equal(t, 4, s.GetColumnCount())
	require.Equal(t, int32(4+1+types.VarlenSlotSize+8), s.FixedLength())

	require.Equal(t, int32(0), s.GetColumn(0).Offset)
	require.Equal(t, int32(4), s.GetColumn(1).Offset)
	require.Equal(t, int32(5), s.GetColumn(2).Offset)
	require.Equal(t, int32(5+types.VarlenSlotSize), s.GetColumn(3).Offset)

	require.True(t, s.GetColumn(0).Inlined)
	require.False(t, s.GetColumn(2).Inlined)
	require.Equal(t, 1, s.GetUninlinedColumnCount())
}

func TestSchemaProject(t *testing.T) {
	s := NewSchema(testColumns())

	p, err := s.Project([]int{3, 0})
	require.NoError(t, err)
	require.Equal(t, 2, p.GetColumnCount())
	require.Equal(t, "score", p.GetColumn(0).Name)
	require.Equal(t, "id", p.GetColumn(1).Name)
	// offsets reassigned for the narrower row
	require.Equal(t, int32(0), p.GetColumn(0).Offset)
	require.Equal(t, int32(8), p.GetColumn(1).Offset)
	// source untouched
	require.Equal(t, int32(0), s.GetColumn(0).Offset)

	_, err = s.Project([]int{4})
	require.True(t, plerr.IsErrCode(err, plerr.ErrIndexOutOfRange))
}

func TestSchemaAppend(t *testing.T) {
	a := NewSchema(testColumns()[:2])
	b := NewSchema(testColumns()[2:])

	s := Append([]*Schema{a, b})
	require.Equal(t, 4, s.GetColumnCount())
	require.Equal(t, "name", s.GetColumn(2).Name)
	// combined layout restarts offsets from zero
	require.Equal(t, int32(5), s.GetColumn(2).Offset)
}

func TestManager(t *testing.T) {
	m := NewManager()
	defer m.Close()

	oid1 := m.NextOid()
	oid2 := m.NextOid()
	require.NotEqual(t, InvalidOid, oid1)
	require.NotEqual(t, oid1, oid2)

	m.SetLocation(oid1, "a")
	m.SetLocation(oid2, "b")
	require.Equal(t, 2, m.Count())
	require.Equal(t, "a", m.GetLocation(oid1))

	var seen []uint64
	m.Range(func(oid uint64, loc any) bool {
		seen = append(seen, oid)
		return true
	})
	require.Equal(t, []uint64{oid1, oid2}, seen)

	m.DropLocation(oid1)
	require.Nil(t, m.GetLocation(oid1))
	require.Equal(t, 1, m.Count())
}
