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
	"sync"
	"sync/atomic"

	"github.com/google/btree"
)

// InvalidOid is never allocated.
const InvalidOid uint64 = 0

// Manager is the metadata directory: it allocates object identifiers
// and maps them to storage locations.  It is an explicitly constructed
// context, passed to whoever needs it, with explicit teardown; there
// is no process-wide instance.
type Manager struct {
	mu      sync.Mutex
	nextOid atomic.Uint64
	// locators is ordered by oid so scans walk tile groups in
	// allocation order.
	locators *btree.BTree
}

type locatorItem struct {
	oid uint64
	loc any
}

func (a locatorItem) Less(b btree.Item) bool {
	return a.oid < b.(locatorItem).oid
}

func NewManager() *Manager {
	return &Manager{
		locators: btree.New(2),
	}
}

// NextOid allocates a fresh object identifier.
func (m *Manager) NextOid() uint64 {
	return m.nextOid.Add(1)
}

// SetLocation registers the storage object identified by oid.
func (m *Manager) SetLocation(oid uint64, loc any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locators.ReplaceOrInsert(locatorItem{oid: oid, loc: loc})
}

// GetLocation resolves oid, or nil when it was never registered or
// has been dropped.
func (m *Manager) GetLocation(oid uint64) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := m.locators.Get(locatorItem{oid: oid})
	if it == nil {
		return nil
	}
	return it.(locatorItem).loc
}

func (m *Manager) DropLocation(oid uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locators.Delete(locatorItem{oid: oid})
}

// Count reports the number of registered locations.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locators.Len()
}

// Range walks the registered locations in oid order until fn returns
// false.
func (m *Manager) Range(fn func(oid uint64, loc any) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locators.Ascend(func(it btree.Item) bool {
		li := it.(locatorItem)
		return fn(li.oid, li.loc)
	})
}

// Close drops every registered location.  The storage objects
// themselves belong to their owners; Close only empties the directory.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locators.Clear(false)
}
