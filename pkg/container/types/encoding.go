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
	"encoding/binary"
	"math"
)

// Fixed-width wire helpers for tile rows.  Everything is
// little-endian.  Varlen slots are written by the tile itself since
// only it knows the pool handles.

// EncodeFixed writes v's inlined representation into buf, which must
// be at least TypeSize(v.Oid()) bytes.  v must not be varlen.
func EncodeFixed(v Value, buf []byte) {
	switch v.typ {
	case T_bool, T_tinyint:
		buf[0] = byte(v.iv)
	case T_smallint:
		binary.LittleEndian.PutUint16(buf, uint16(v.iv))
	case T_int:
		binary.LittleEndian.PutUint32(buf, uint32(v.iv))
	case T_bigint, T_timestamp:
		binary.LittleEndian.PutUint64(buf, uint64(v.iv))
	case T_double:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v.fv))
	default:
		panic("encoding varlen value as fixed")
	}
}

// DecodeFixed reads an inlined value of type oid out of buf.
func DecodeFixed(oid T, buf []byte) Value {
	switch oid {
	case T_bool:
		return NewBoolValue(buf[0] != 0)
	case T_tinyint:
		return NewTinyIntValue(int8(buf[0]))
	case T_smallint:
		return NewSmallIntValue(int16(binary.LittleEndian.Uint16(buf)))
	case T_int:
		return NewIntegerValue(int32(binary.LittleEndian.Uint32(buf)))
	case T_bigint:
		return NewBigIntValue(int64(binary.LittleEndian.Uint64(buf)))
	case T_timestamp:
		return NewTimestampValue(int64(binary.LittleEndian.Uint64(buf)))
	case T_double:
		return NewDoubleValue(math.Float64frombits(binary.LittleEndian.Uint64(buf)))
	default:
		panic("decoding varlen value as fixed")
	}
}

// EncodeVarlenSlot writes the (handle, length) pair of an uninlined
// value.
func EncodeVarlenSlot(buf []byte, handle uint32, length uint32) {
	binary.LittleEndian.PutUint32(buf, handle)
	binary.LittleEndian.PutUint32(buf[4:], length)
}

// DecodeVarlenSlot reads back a (handle, length) pair.
func DecodeVarlenSlot(buf []byte) (handle uint32, length uint32) {
	return binary.LittleEndian.Uint32(buf), binary.LittleEndian.Uint32(buf[4:])
}
