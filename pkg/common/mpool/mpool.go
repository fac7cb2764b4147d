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

// Package mpool is the memory pool backing tile storage.  A pool is a
// named accounting domain: every tile data block and every uninlined
// value copied into a tile is charged against exactly one pool, and
// released back to it when the owner is destroyed.  A capacity of 0
// means no limit.
package mpool

import (
	"context"
	"sync/atomic"

	"github.com/twistedlog/peloton/pkg/common/plerr"
)

// MPoolStats tracks allocation traffic of one pool.
type MPoolStats struct {
	NumAlloc      atomic.Int64 // number of allocations
	NumFree       atomic.Int64 // number of frees
	NumCurrBytes  atomic.Int64 // bytes currently allocated
	HighWaterMark atomic.Int64 // max value of NumCurrBytes
}

func (s *MPoolStats) RecordAlloc(sz int64) int64 {
	s.NumAlloc.Add(1)
	curr := s.NumCurrBytes.Add(sz)
	for {
		hwm := s.HighWaterMark.Load()
		if curr <= hwm {
			break
		}
		if s.HighWaterMark.CompareAndSwap(hwm, curr) {
			break
		}
	}
	return curr
}

func (s *MPoolStats) RecordFree(sz int64) int64 {
	s.NumFree.Add(1)
	return s.NumCurrBytes.Add(-sz)
}

// MPool is a named memory pool with a byte budget.
type MPool struct {
	tag   string
	cap   int64
	stats MPoolStats
}

// NoFixed means no capacity limit.
const NoFixed int64 = 0

func NewMPool(tag string, cap int64) (*MPool, error) {
	if cap < 0 {
		return nil, plerr.NewInvalidInput(context.TODO(), "mpool %s: negative cap %d", tag, cap)
	}
	return &MPool{tag: tag, cap: cap}, nil
}

func (m *MPool) Tag() string {
	return m.tag
}

func (m *MPool) Cap() int64 {
	return m.cap
}

// CurrNB returns the number of bytes currently charged to the pool.
func (m *MPool) CurrNB() int64 {
	return m.stats.NumCurrBytes.Load()
}

func (m *MPool) Stats() *MPoolStats {
	return &m.stats
}

// Alloc returns a zeroed buffer of sz bytes charged to this pool.
// Exceeding the pool cap fails with ErrOOM; nothing is charged in
// that case.
func (m *MPool) Alloc(sz int) ([]byte, error) {
	if sz < 0 {
		return nil, plerr.NewInvalidInput(context.TODO(), "mpool %s: alloc size %d", m.tag, sz)
	}
	if sz == 0 {
		return nil, nil
	}
	if m.cap > 0 && m.CurrNB()+int64(sz) > m.cap {
		return nil, plerr.NewOOM(context.TODO())
	}
	m.stats.RecordAlloc(int64(sz))
	return make([]byte, sz), nil
}

// Free returns buf's bytes to the pool.  Freeing nil is a no-op.
func (m *MPool) Free(buf []byte) {
	if buf == nil {
		return
	}
	m.stats.RecordFree(int64(len(buf)))
}

// Realloc grows buf to sz bytes, copying the old contents.  The new
// tail is zeroed.  buf is freed; only the returned buffer remains
// charged.
func (m *MPool) Realloc(buf []byte, sz int) ([]byte, error) {
	if sz <= len(buf) {
		return buf, nil
	}
	nb, err := m.Alloc(sz)
	if err != nil {
		return nil, err
	}
	copy(nb, buf)
	m.Free(buf)
	return nb, nil
}
