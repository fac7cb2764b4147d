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

package executor

import (
	"context"

	"github.com/twistedlog/peloton/pkg/common/mpool"
	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/logutil"
	"github.com/twistedlog/peloton/pkg/planner"
	"github.com/twistedlog/peloton/pkg/storage"
)

// MaterializationExecutor collapses its child's logical tile stream
// into self-contained physical tiles.  Every pull copies the remapped
// columns of the child's view into a freshly allocated tile and wraps
// it as an owned view, so the child's source tiles may be destroyed
// the instant the call returns.  The copy is unconditional: there is
// no pass-through even when the view spans a single tile.
type MaterializationExecutor struct {
	node  *planner.MaterializationNode
	child Executor
	mp    *mpool.MPool

	state int
}

func NewMaterializationExecutor(node *planner.MaterializationNode, child Executor, mp *mpool.MPool) *MaterializationExecutor {
	return &MaterializationExecutor{
		node:  node,
		child: child,
		mp:    mp,
	}
}

// Init initializes the sole child.  A child failure is surfaced and
// leaves this operator unusable; the branch is fatal and never
// retried.
func (e *MaterializationExecutor) Init() error {
	if e.state != Uninitialized {
		return plerr.NewInvalidState(context.TODO(), "materialization executor already initialized")
	}
	if err := e.child.Init(); err != nil {
		logutil.Errorf("materialization child init failed: %v", err)
		e.state = Failed
		return err
	}
	e.state = Running
	return nil
}

// GetNextTile pulls the child's next view and materializes it.  It
// returns (nil, nil) at end of stream; once the child is exhausted
// every subsequent call returns (nil, nil) without re-invoking the
// child.
func (e *MaterializationExecutor) GetNextTile() (*LogicalTile, error) {
	switch e.state {
	case Uninitialized:
		return nil, plerr.NewInvalidState(context.TODO(), "materialization executor not initialized")
	case Failed:
		return nil, plerr.NewInvalidState(context.TODO(), "materialization executor failed to initialize")
	case Done:
		return nil, nil
	}

	src, err := e.child.GetNextTile()
	if err != nil {
		return nil, err
	}
	if src == nil {
		e.state = Done
		return nil, nil
	}

	inverse, err := e.buildInverseMapping(src.NumCols())
	if err != nil {
		src.Free()
		return nil, err
	}

	out, err := e.materialize(src, inverse)
	// the consumed view's own owns flag governs whether its source
	// tiles are freed here
	src.Free()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// buildInverseMapping turns the node's source→output remap into an
// output-ordinal indexed lookup of source ordinals, validating it
// against the pulled view's width.  Any mismatch is a planner defect.
func (e *MaterializationExecutor) buildInverseMapping(srcWidth int) ([]int, error) {
	remap := e.node.OldToNewCols()
	width := e.node.Schema().GetColumnCount()
	if len(remap) != width {
		return nil, plerr.NewContractViolation(context.TODO(),
			"remap size %d, output schema width %d", len(remap), width)
	}
	inverse := make([]int, width)
	assigned := make([]bool, width)
	for oldCol, newCol := range remap {
		if newCol < 0 || newCol >= width {
			return nil, plerr.NewContractViolation(context.TODO(),
				"output ordinal %d outside schema width %d", newCol, width)
		}
		if assigned[newCol] {
			return nil, plerr.NewContractViolation(context.TODO(),
				"output ordinal %d mapped twice", newCol)
		}
		if oldCol < 0 || oldCol >= srcWidth {
			return nil, plerr.NewContractViolation(context.TODO(),
				"remap source ordinal %d outside view width %d", oldCol, srcWidth)
		}
		assigned[newCol] = true
		inverse[newCol] = oldCol
	}
	return inverse, nil
}

// materialize copies the remapped columns of src into a new tile and
// wraps it as an owned identity view.  Uninlined values are deep
// copied into the new tile's own pool.
func (e *MaterializationExecutor) materialize(src *LogicalTile, inverse []int) (*LogicalTile, error) {
	rows := src.RowCount()
	newTile, err := storage.NewTile(e.node.Schema(), rows, e.mp)
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		for c := range inverse {
			v, err := src.GetValue(inverse[c], r)
			if err != nil {
				newTile.Free()
				return nil, err
			}
			if err := newTile.SetValue(r, c, v); err != nil {
				newTile.Free()
				return nil, err
			}
		}
	}
	out, err := WrapTiles([]*storage.Tile{newTile}, true)
	if err != nil {
		newTile.Free()
		return nil, err
	}
	return out, nil
}
