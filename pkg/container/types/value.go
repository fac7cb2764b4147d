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
	"bytes"
	"fmt"
)

// Value is a typed scalar moving between tuples, tiles and logical
// tiles.  It is a value object: assignment copies it, and for varlen
// payloads the bytes it carries never alias tile storage (tile reads
// copy out, tile writes copy in).
type Value struct {
	typ  T
	null bool
	iv   int64
	fv   float64
	bs   []byte
}

func NewBoolValue(v bool) Value {
	var iv int64
	if v {
		iv = 1
	}
	return Value{typ: T_bool, iv: iv}
}

func NewTinyIntValue(v int8) Value {
	return Value{typ: T_tinyint, iv: int64(v)}
}

func NewSmallIntValue(v int16) Value {
	return Value{typ: T_smallint, iv: int64(v)}
}

func NewIntegerValue(v int32) Value {
	return Value{typ: T_int, iv: int64(v)}
}

func NewBigIntValue(v int64) Value {
	return Value{typ: T_bigint, iv: v}
}

func NewDoubleValue(v float64) Value {
	return Value{typ: T_double, fv: v}
}

func NewTimestampValue(v int64) Value {
	return Value{typ: T_timestamp, iv: v}
}

// NewStringValue copies s; the Value owns its bytes.
func NewStringValue(s string) Value {
	return Value{typ: T_varchar, bs: []byte(s)}
}

// NewVarcharValue copies b; the caller's buffer may be reused after
// the call.
func NewVarcharValue(b []byte) Value {
	nb := make([]byte, len(b))
	copy(nb, b)
	return Value{typ: T_varchar, bs: nb}
}

func NewNullValue(typ T) Value {
	return Value{typ: typ, null: true}
}

func (v Value) Oid() T {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.null
}

func (v Value) GetBool() bool {
	return v.iv != 0
}

func (v Value) GetInt64() int64 {
	return v.iv
}

func (v Value) GetDouble() float64 {
	return v.fv
}

func (v Value) GetString() string {
	return string(v.bs)
}

// GetBytes returns the varlen payload without copying.  Callers must
// not hold the slice past the Value's lifetime.
func (v Value) GetBytes() []byte {
	return v.bs
}

func (v Value) Equal(o Value) bool {
	if v.typ != o.typ || v.null != o.null {
		return false
	}
	if v.null {
		return true
	}
	switch v.typ {
	case T_double:
		return v.fv == o.fv
	case T_varchar:
		return bytes.Equal(v.bs, o.bs)
	default:
		return v.iv == o.iv
	}
}

func (v Value) String() string {
	if v.null {
		return "NULL"
	}
	switch v.typ {
	case T_bool:
		return fmt.Sprintf("%v", v.GetBool())
	case T_double:
		return fmt.Sprintf("%v", v.fv)
	case T_varchar:
		return string(v.bs)
	default:
		return fmt.Sprintf("%d", v.iv)
	}
}
