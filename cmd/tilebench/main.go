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

// tilebench builds a tile group, runs it through the materialization
// executor and reports pool traffic.  It exists to exercise the
// storage and executor layers end to end from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/twistedlog/peloton/pkg/catalog"
	"github.com/twistedlog/peloton/pkg/common/mpool"
	"github.com/twistedlog/peloton/pkg/config"
	"github.com/twistedlog/peloton/pkg/container/types"
	"github.com/twistedlog/peloton/pkg/executor"
	"github.com/twistedlog/peloton/pkg/logutil"
	"github.com/twistedlog/peloton/pkg/planner"
	"github.com/twistedlog/peloton/pkg/storage"
)

var (
	configFile = flag.String("config", "", "toml configuration file")
	rows       = flag.Int("rows", 1024, "tuples to insert")
)

// scanStub replays one wrapped view, standing in for a table scan.
type scanStub struct {
	tile *executor.LogicalTile
}

func (s *scanStub) Init() error {
	return nil
}

func (s *scanStub) GetNextTile() (*executor.LogicalTile, error) {
	lt := s.tile
	s.tile = nil
	return lt, nil
}

func run() error {
	cfg := config.NewDefault()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadConfigFromFile(*configFile); err != nil {
			return err
		}
	}
	logutil.Setup(cfg.Log)

	n := *rows
	if int64(n) > cfg.Storage.TuplesPerTileGroup {
		n = int(cfg.Storage.TuplesPerTileGroup)
	}

	mp, err := mpool.NewMPool("tilebench", cfg.Storage.MempoolMaxSize)
	if err != nil {
		return err
	}
	mgr := catalog.NewManager()
	defer mgr.Close()

	schema1 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_a", types.New(types.T_int, 0)),
		catalog.NewColumn("col_b", types.New(types.T_int, 0)),
	})
	schema2 := catalog.NewSchema([]catalog.Column{
		catalog.NewColumn("col_c", types.New(types.T_tinyint, 0)),
		catalog.NewColumn("col_d", types.New(types.T_varchar, 25)),
	})
	tg, err := storage.NewTileGroup(mgr, []*catalog.Schema{schema1, schema2}, n, mp)
	if err != nil {
		return err
	}
	defer tg.Free()

	schema := catalog.Append(tg.GetTileSchemas())
	for i := 0; i < n; i++ {
		tup := storage.NewTuple(schema)
		vals := []types.Value{
			types.NewIntegerValue(int32(10 * i)),
			types.NewIntegerValue(int32(10*i + 1)),
			types.NewTinyIntValue(int8(i % 100)),
			types.NewStringValue(strconv.Itoa(10*i + 3)),
		}
		for col, v := range vals {
			if err := tup.SetValue(col, v); err != nil {
				return err
			}
		}
		if _, err := tg.InsertTuple(tup); err != nil {
			return err
		}
	}
	logutil.Infof("inserted %d tuples into tile group %d", n, tg.Oid())

	src, err := executor.WrapTileGroup(tg)
	if err != nil {
		return err
	}

	// reorder to (varchar, col_b, col_a), dropping col_c
	outputSchema := catalog.NewSchema([]catalog.Column{
		tg.GetTile(1).GetSchema().GetColumn(1),
		tg.GetTile(0).GetSchema().GetColumn(1),
		tg.GetTile(0).GetSchema().GetColumn(0),
	})
	node := planner.NewMaterializationNode(map[int]int{3: 0, 1: 1, 0: 2}, outputSchema)

	exec := executor.NewMaterializationExecutor(node, &scanStub{tile: src}, mp)
	if err := exec.Init(); err != nil {
		return err
	}
	for {
		lt, err := exec.GetNextTile()
		if err != nil {
			return err
		}
		if lt == nil {
			break
		}
		logutil.Infof("materialized tile: %d cols x %d rows", lt.NumCols(), lt.RowCount())
		lt.Free()
	}

	stats := mp.Stats()
	logutil.Infof("pool %s: allocs=%d frees=%d curr=%dB hwm=%dB",
		mp.Tag(), stats.NumAlloc.Load(), stats.NumFree.Load(),
		mp.CurrNB(), stats.HighWaterMark.Load())
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tilebench: %v\n", err)
		os.Exit(1)
	}
}
