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
	"context"
	"strings"

	"github.com/twistedlog/peloton/pkg/common/plerr"
)

// Schema is an ordered column list.  The order fixes both the byte
// layout of a tile row and the ordinal numbering seen by consumers.
// A Schema never changes after construction; derivations (Project,
// Append) build new schemas.
type Schema struct {
	columns []Column
	// length is the fixed row stride: the sum of all column in-row
	// footprints.
	length int32
}

// NewSchema assigns byte offsets in column order and computes the row
// stride.
func NewSchema(cols []Column) *Schema {
	s := &Schema{columns: make([]Column, len(cols))}
	var off int32
	for i, c := range cols {
		c.Offset = off
		c.Inlined = !c.Type.IsVarlen()
		off += c.FixedLength()
		s.columns[i] = c
	}
	s.length = off
	return s
}

func (s *Schema) GetColumnCount() int {
	return len(s.columns)
}

// GetColumn returns the idx-th column by value.  idx must be in
// range; callers bound-check against GetColumnCount first.
func (s *Schema) GetColumn(idx int) Column {
	return s.columns[idx]
}

// FixedLength is the byte stride of one row laid out per this schema.
func (s *Schema) FixedLength() int32 {
	return s.length
}

func (s *Schema) GetUninlinedColumnCount() int {
	var n int
	for _, c := range s.columns {
		if !c.Inlined {
			n++
		}
	}
	return n
}

// Project derives a new schema holding the chosen subsequence of
// columns, with offsets reassigned for the narrower row.  The source
// schema is not mutated.
func (s *Schema) Project(indices []int) (*Schema, error) {
	cols := make([]Column, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(s.columns) {
			return nil, plerr.NewIndexOutOfRange(context.TODO(), "schema column", idx, len(s.columns))
		}
		cols[i] = s.columns[idx]
	}
	return NewSchema(cols), nil
}

// Append concatenates schemas into one combined row schema, in order.
// Used by consumers of a tile group to rebuild the overall tuple
// layout from the per-tile schema list.
func Append(schemas []*Schema) *Schema {
	var cols []Column
	for _, sch := range schemas {
		cols = append(cols, sch.columns...)
	}
	return NewSchema(cols)
}

// Copy returns a new schema with the same columns and freshly
// assigned offsets.
func (s *Schema) Copy() *Schema {
	return NewSchema(s.columns)
}

func (s *Schema) String() string {
	parts := make([]string, len(s.columns))
	for i, c := range s.columns {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
