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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeSize(t *testing.T) {
	require.Equal(t, 1, TypeSize(T_tinyint))
	require.Equal(t, 2, TypeSize(T_smallint))
	require.Equal(t, 4, TypeSize(T_int))
	require.Equal(t, 8, TypeSize(T_bigint))
	require.Equal(t, 8, TypeSize(T_double))
	require.Equal(t, VarlenSlotSize, TypeSize(T_varchar))

	require.True(t, New(T_varchar, 32).IsVarlen())
	require.False(t, New(T_int, 0).IsVarlen())
}

func TestFixedRoundTrip(t *testing.T) {
	cases := []Value{
		NewBoolValue(true),
		NewTinyIntValue(-7),
		NewSmallIntValue(1234),
		NewIntegerValue(-56789),
		NewBigIntValue(1 << 40),
		NewDoubleValue(3.25),
		NewTimestampValue(1692800000),
	}
	buf := make([]byte, 8)
	for _, v := range cases {
		EncodeFixed(v, buf)
		got := DecodeFixed(v.Oid(), buf)
		require.True(t, v.Equal(got), "type %s: %v != %v", v.Oid(), v, got)
	}
}

func TestValueEqual(t *testing.T) {
	require.True(t, NewStringValue("abc").Equal(NewVarcharValue([]byte("abc"))))
	require.False(t, NewStringValue("abc").Equal(NewStringValue("abd")))
	require.False(t, NewIntegerValue(1).Equal(NewBigIntValue(1)))
	require.True(t, NewNullValue(T_int).Equal(NewNullValue(T_int)))
	require.False(t, NewNullValue(T_int).Equal(NewIntegerValue(0)))
}

func TestVarcharValueCopies(t *testing.T) {
	buf := []byte("hello")
	v := NewVarcharValue(buf)
	buf[0] = 'X'
	require.Equal(t, "hello", v.GetString())
}
