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

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/alexandremahdhaoui/objtool/internal/version"
	"github.com/alexandremahdhaoui/objtool/pkg/cliopts"
)

// Config holds the configuration for CLI bootstrap.
type Config struct {
	// Name is the command name (e.g., "objls", "objget")
	Name string

	// Version information (typically set via ldflags)
	Version        string
	CommitSHA      string
	BuildTimestamp string

	// ArgTypes lists the positional argument types, for completion.
	ArgTypes []string

	// SetupFlags registers command-specific flags (optional)
	SetupFlags func(p *cliopts.Parser)

	// ParseCmdOptions performs command-specific option checks (optional)
	// Defaults to returning the options unchanged
	ParseCmdOptions cliopts.CmdOptionsFunc

	// RunCLI executes the command once options are parsed
	RunCLI func(ctx context.Context, opts *cliopts.Options, stdout io.Writer) error

	// Environ overrides the process environment (optional, used by tests)
	Environ map[string]string
}

// Bootstrap provides a unified entry point for objtool commands.
//
// This function will call os.Exit and never return.
func Bootstrap(cfg Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run parses argv, runs the command and returns the process exit code.
//
// Informational output (help, version, completion) goes to stdout; usage
// errors and command failures go to stderr.
func Run(ctx context.Context, cfg Config, argv []string, stdout, stderr io.Writer) int {
	parser := cliopts.NewParser(cfg.Name)
	if cfg.SetupFlags != nil {
		cfg.SetupFlags(parser)
	}

	parseCmdOptions := cfg.ParseCmdOptions
	if parseCmdOptions == nil {
		parseCmdOptions = func(opts *cliopts.Options, _ *cliopts.Parser) (*cliopts.Options, error) {
			return opts, nil
		}
	}

	info := version.New(cfg.Name)
	if cfg.Version != "" {
		info.Version = cfg.Version
	}
	if cfg.CommitSHA != "" {
		info.CommitSHA = cfg.CommitSHA
	}
	if cfg.BuildTimestamp != "" {
		info.BuildTimestamp = cfg.BuildTimestamp
	}

	if argv == nil {
		argv = []string{}
	}

	logHandle := cliopts.NewLogHandle(stderr)
	defer func() { _ = logHandle.Logger.Sync() }()

	opts, err := cliopts.ParseOptions(cliopts.Args{
		Name:            cfg.Name,
		Parser:          parser,
		ArgTypes:        cfg.ArgTypes,
		ParseCmdOptions: parseCmdOptions,
		Log:             logHandle,
		Version:         info,
		Argv:            argv,
		Environ:         cfg.Environ,
	})
	if err != nil {
		var exitErr *cliopts.ExitError
		if !errors.As(err, &exitErr) {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", cfg.Name, err)
			return 1
		}
		if exitErr.Success() {
			_, _ = fmt.Fprint(stdout, exitErr.Message)
		} else {
			_, _ = fmt.Fprint(stderr, exitErr.Message)
		}
		return exitErr.Code
	}

	if err := cfg.RunCLI(ctx, opts, stdout); err != nil {
		logHandle.Logger.Debug("command failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", cfg.Name, err)
		return 1
	}

	return 0
}
