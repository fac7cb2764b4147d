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

// Package catalog holds the attribute metadata of the storage layer:
// columns, schemas and the metadata directory.  Schema and Column are
// value objects resolved at plan-construction time; nothing in this
// package enforces constraints, it only records them.
package catalog

import (
	"fmt"

	"github.com/twistedlog/peloton/pkg/container/types"
)

type ConstraintType uint8

const (
	ConstraintNotNull ConstraintType = iota
	ConstraintPrimaryKey
	ConstraintUnique
	ConstraintDefault
)

// Constraint is a tag carried on a column.  It is consumed by the
// metadata layer and ignored here.
type Constraint struct {
	Typ  ConstraintType
	Name string
}

// Column describes one attribute and its placement inside the owning
// tile's fixed-stride row.  Columns are immutable once their schema is
// built; Offset is assigned by NewSchema.
type Column struct {
	Name        string
	Type        types.Type
	Offset      int32
	Inlined     bool
	Constraints []Constraint
}

func NewColumn(name string, typ types.Type, cs ...Constraint) Column {
	return Column{
		Name:        name,
		Type:        typ,
		Inlined:     !typ.IsVarlen(),
		Constraints: cs,
	}
}

// FixedLength is the column's in-row footprint in bytes.
func (c Column) FixedLength() int32 {
	return c.Type.Size
}

func (c Column) String() string {
	return fmt.Sprintf("%s %s @%d", c.Name, c.Type, c.Offset)
}
