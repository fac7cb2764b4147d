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

// Package planner carries the construction-time plan inputs handed to
// executors.  Plan nodes are immutable value holders; all decisions
// about remaps and output schemas are made upstream.
package planner

import (
	"github.com/twistedlog/peloton/pkg/catalog"
)

// MaterializationNode configures one materialization: a one-to-one
// remap from source column ordinal to output column ordinal, plus the
// output schema whose width equals the remap's size and whose column
// order is output-ordinal order.
type MaterializationNode struct {
	oldToNewCols map[int]int
	schema       *catalog.Schema
}

func NewMaterializationNode(oldToNewCols map[int]int, schema *catalog.Schema) *MaterializationNode {
	return &MaterializationNode{
		oldToNewCols: oldToNewCols,
		schema:       schema,
	}
}

// OldToNewCols maps source ordinal to output ordinal.  Callers must
// not mutate the returned map.
func (n *MaterializationNode) OldToNewCols() map[int]int {
	return n.oldToNewCols
}

func (n *MaterializationNode) Schema() *catalog.Schema {
	return n.schema
}
