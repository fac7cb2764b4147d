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

// Package nulls tracks the NULL rows of one tile column as a bitmap.
// The bitmap is lazily allocated; a column with no NULLs costs nothing.
package nulls

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

type Nulls struct {
	np *roaring.Bitmap
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil {
		return nil
	}
	if nsp.np == nil {
		return &Nulls{}
	}
	return &Nulls{np: nsp.np.Clone()}
}

// Any returns true if any bit is set.
func (nsp *Nulls) Any() bool {
	return nsp != nil && nsp.np != nil && !nsp.np.IsEmpty()
}

func (nsp *Nulls) Set(row uint32) {
	if nsp.np == nil {
		nsp.np = roaring.New()
	}
	nsp.np.Add(row)
}

func (nsp *Nulls) Del(row uint32) {
	if nsp.np == nil {
		return
	}
	nsp.np.Remove(row)
}

func (nsp *Nulls) Contains(row uint32) bool {
	return nsp != nil && nsp.np != nil && nsp.np.Contains(row)
}

func (nsp *Nulls) Count() int {
	if nsp == nil || nsp.np == nil {
		return 0
	}
	return int(nsp.np.GetCardinality())
}

func (nsp *Nulls) Reset() {
	if nsp.np != nil {
		nsp.np.Clear()
	}
}

func (nsp *Nulls) String() string {
	if nsp == nil || nsp.np == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", nsp.np.ToArray())
}
