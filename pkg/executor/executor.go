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

// Package executor implements the pull-based operator layer: logical
// tile views over physical tiles, and the operators that produce and
// consume them.
package executor

// Executor is the two-method capability every node of an executor
// tree exposes.  Anything implementing it can serve as a child: scan,
// filter, join, or a test stub.
//
// GetNextTile returns the next logical tile of the stream, or nil at
// end of stream.  GetNextTile may block while the child works; this
// layer adds no suspension point of its own.
type Executor interface {
	Init() error
	GetNextTile() (*LogicalTile, error)
}

// Executor state machine.  An executor whose Init failed moves to
// Failed and is unusable for this branch of the pipeline; the failure
// is never retried.
const (
	Uninitialized = iota
	Running
	Done
	Failed
)
