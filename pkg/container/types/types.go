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

import "fmt"

// T is the logical type id of a column.
type T uint8

const (
	T_any T = iota

	T_bool

	// integer family, named after their SQL spellings
	T_tinyint  // int8
	T_smallint // int16
	T_int      // int32
	T_bigint   // int64

	T_double // float64

	T_varchar

	T_timestamp
)

// Type describes one column's physical shape inside a tile.  Size is
// the number of bytes the value occupies in the tile's fixed-stride
// row; for uninlined types it is the size of the reference slot, not
// of the payload.
type Type struct {
	Oid T
	// Size of the in-row representation, bytes.
	Size int32
	// Width is the declared max length for varchar, 0 otherwise.
	Width int32
}

// VarlenSlotSize is the in-row footprint of an uninlined value:
// a uint32 handle plus a uint32 byte length.
const VarlenSlotSize = 8

func New(oid T, width int32) Type {
	return Type{Oid: oid, Size: int32(TypeSize(oid)), Width: width}
}

// TypeSize returns the in-row byte size of oid.
func TypeSize(oid T) int {
	switch oid {
	case T_bool, T_tinyint:
		return 1
	case T_smallint:
		return 2
	case T_int:
		return 4
	case T_bigint, T_double, T_timestamp:
		return 8
	case T_varchar:
		return VarlenSlotSize
	default:
		panic(fmt.Sprintf("unknown type %d", oid))
	}
}

// IsVarlen reports whether values of this type are stored uninlined,
// as a (handle, length) slot referencing pool-owned bytes.
func (t Type) IsVarlen() bool {
	return t.Oid == T_varchar
}

func (t Type) String() string {
	return t.Oid.String()
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_tinyint:
		return "TINYINT"
	case T_smallint:
		return "SMALLINT"
	case T_int:
		return "INT"
	case T_bigint:
		return "BIGINT"
	case T_double:
		return "DOUBLE"
	case T_varchar:
		return "VARCHAR"
	case T_timestamp:
		return "TIMESTAMP"
	}
	return fmt.Sprintf("unexpected type tag %d", t)
}
