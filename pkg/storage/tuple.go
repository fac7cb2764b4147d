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

// Package storage holds the physical column-group layout of a table:
// tiles, tile groups and the tuple rows moving into them.
package storage

import (
	"context"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/container/types"
)

// Tuple is one row staged for insertion, typed by the combined schema
// of the destination tile group.
type Tuple struct {
	schema *catalog.Schema
	values []types.Value
}

func NewTuple(schema *catalog.Schema) *Tuple {
	vals := make([]types.Value, schema.GetColumnCount())
	for i := range vals {
		vals[i] = types.NewNullValue(schema.GetColumn(i).Type.Oid)
	}
	return &Tuple{schema: schema, values: vals}
}

func (t *Tuple) GetSchema() *catalog.Schema {
	return t.schema
}

func (t *Tuple) ColumnCount() int {
	return len(t.values)
}

func (t *Tuple) SetValue(idx int, v types.Value) error {
	if idx < 0 || idx >= len(t.values) {
		return plerr.NewIndexOutOfRange(context.TODO(), "tuple column", idx, len(t.values))
	}
	t.values[idx] = v
	return nil
}

func (t *Tuple) GetValue(idx int) (types.Value, error) {
	if idx < 0 || idx >= len(t.values) {
		return types.Value{}, plerr.NewIndexOutOfRange(context.TODO(), "tuple column", idx, len(t.values))
	}
	return t.values[idx], nil
}
