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

// Package logutil owns the process logger.  Call Setup once at
// startup; everything else logs through the package-level functions.
package logutil

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig selects level, format and sink of the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is console or json.
	Format string `toml:"format"`
	// Filename enables rotating file output when non-empty; stderr
	// otherwise.
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"` // megabytes
	MaxBackups int    `toml:"max-backups"`
	MaxDays    int    `toml:"max-days"`
}

var globalLogger atomic.Pointer[zap.Logger]

func init() {
	globalLogger.Store(newLogger(LogConfig{Level: "info", Format: "console"}))
}

// Setup replaces the global logger per cfg.
func Setup(cfg LogConfig) {
	globalLogger.Store(newLogger(cfg))
}

func GetGlobalLogger() *zap.Logger {
	return globalLogger.Load()
}

func newLogger(cfg LogConfig) *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer
	if cfg.Filename != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxDays,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(enc, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetGlobalLogger().Error(msg, fields...)
}

func Debugf(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Debugf(msg, args...)
}

func Infof(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Infof(msg, args...)
}

func Warnf(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Warnf(msg, args...)
}

func Errorf(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Errorf(msg, args...)
}
