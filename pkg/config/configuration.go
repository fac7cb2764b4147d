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

package config

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/twistedlog/peloton/pkg/common/plerr"
	"github.com/twistedlog/peloton/pkg/logutil"
)

// StorageParameters sizes the in-memory storage layer.
type StorageParameters struct {
	// tuple capacity of one tile group. default: 1024
	TuplesPerTileGroup int64 `toml:"tuplesPerTileGroup"`

	// mpool byte budget per pool. default: 0 (unbounded)
	MempoolMaxSize int64 `toml:"mempoolMaxSize"`
}

type Configuration struct {
	Log     logutil.LogConfig `toml:"log"`
	Storage StorageParameters `toml:"storage"`
}

func (c *Configuration) SetDefaultValues() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Storage.TuplesPerTileGroup == 0 {
		c.Storage.TuplesPerTileGroup = 1024
	}
}

func (c *Configuration) Validate() error {
	if c.Storage.TuplesPerTileGroup < 0 {
		return plerr.NewBadConfig(context.TODO(),
			"tuplesPerTileGroup %d", c.Storage.TuplesPerTileGroup)
	}
	if c.Storage.MempoolMaxSize < 0 {
		return plerr.NewBadConfig(context.TODO(),
			"mempoolMaxSize %d", c.Storage.MempoolMaxSize)
	}
	return nil
}

// LoadConfigFromFile parses the toml file at path, then applies
// defaults and validates.
func LoadConfigFromFile(path string) (*Configuration, error) {
	cfg := &Configuration{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, plerr.NewBadConfig(context.TODO(), "%s: %v", path, err)
	}
	cfg.SetDefaultValues()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a configuration with every default applied.
func NewDefault() *Configuration {
	cfg := &Configuration{}
	cfg.SetDefaultValues()
	return cfg
}
