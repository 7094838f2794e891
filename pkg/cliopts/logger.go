// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cliopts

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogHandle is the logger a command hands to ParseOptions.
// Level is shared with Logger's core, so changing it reconfigures Logger in place.
type LogHandle struct {
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// NewLogHandle creates a console logger writing to w at info level.
func NewLogHandle(w io.Writer) *LogHandle {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	return &LogHandle{
		Logger: zap.New(core),
		Level:  level,
	}
}

// SetupLogger applies the logging options to h and returns the logger commands should use.
//
// The base level comes from OBJ_LOG_LEVEL. Each -v lowers it one step,
// never below debug. Two or more -v also annotate entries with the caller.
func SetupLogger(opts *Options, h *LogHandle) *zap.Logger {
	level := zapcore.InfoLevel
	if opts.LogLevel != "" {
		if parsed, err := zapcore.ParseLevel(opts.LogLevel); err == nil {
			level = parsed
		}
	}

	for i := 0; i < opts.Verbose && level > zapcore.DebugLevel; i++ {
		level--
	}
	h.Level.SetLevel(level)

	logger := h.Logger
	if opts.Verbose >= 2 {
		logger = logger.WithOptions(zap.AddCaller())
	}

	logger.Debug("logger configured",
		zap.Stringer("level", level),
		zap.Int("verbose", opts.Verbose))

	return logger
}
