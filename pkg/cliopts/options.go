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
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alexandremahdhaoui/objtool/internal/version"
)

// Options is the parsed and validated option set shared by every command.
type Options struct {
	// Args holds the positional arguments left after flag parsing.
	Args []string

	Help       bool
	Version    bool
	Completion bool
	Verbose    int
	// Header holds the raw --header values, in command-line order.
	Header []string

	URL       string
	Account   string
	Subuser   string
	KeyID     string
	SecretKey string
	Role      []string
	Insecure  bool
	Region    string
	LogLevel  string

	// Paths is a copy of Args; it is never empty once ParseOptions succeeds.
	Paths []string
	// Headers maps header names, taken verbatim, to their trimmed values.
	Headers map[string]string
	// Log is the logger configured from the logging options.
	Log *zap.Logger
	// Values holds command-specific settings recorded by the parse callback.
	Values map[string]any
}

// CmdOptionsFunc performs command-specific option handling.
//
// It receives options whose Paths and Headers are already populated and
// returns the options to hand back to the caller, usually the same value.
// A returned *ExitError is passed through; any other error becomes a usage error.
type CmdOptionsFunc func(opts *Options, p *Parser) (*Options, error)

// Args describes how ParseOptions should parse a command line.
type Args struct {
	// Name is the command name used in usage and completion output.
	Name string
	// Parser holds the option schema.
	Parser *Parser
	// ArgTypes lists the positional argument types, for completion.
	ArgTypes []string
	// ParseCmdOptions runs after the shared validation.
	ParseCmdOptions CmdOptionsFunc
	// Log is configured from the logging options.
	Log *LogHandle

	// Version defaults to version.New(Name).
	Version *version.Info
	// Argv defaults to os.Args[1:].
	Argv []string
	// Environ defaults to the process environment.
	Environ map[string]string
}

// mustValidate panics when args is malformed. These are programming errors
// in the calling command, not user input errors.
func (a Args) mustValidate() {
	switch {
	case a.Name == "":
		panic("cliopts: args.Name must be a non-empty string")
	case a.Parser == nil:
		panic("cliopts: args.Parser must not be nil")
	case a.ParseCmdOptions == nil:
		panic("cliopts: args.ParseCmdOptions must not be nil")
	case a.Log == nil || a.Log.Logger == nil:
		panic("cliopts: args.Log must not be nil")
	}
}

// ParseOptions parses the command line, runs the shared checks and then the
// command-specific callback.
//
// Every terminal outcome is returned as an *ExitError: code 0 for help,
// version and completion output, code 1 for usage errors. The caller is
// responsible for printing the message and exiting.
func ParseOptions(args Args) (*Options, error) {
	args.mustValidate()

	p := args.Parser
	argv := args.Argv
	if argv == nil {
		argv = os.Args[1:]
	}

	opts, err := p.Parse(argv, args.Environ)
	if err == nil {
		err = CheckBinEnv(opts)
	}
	if err != nil {
		return nil, p.Usage(err.Error(), err)
	}

	opts.Log = SetupLogger(opts, args.Log)

	if opts.Help {
		return nil, p.Help()
	}

	info := args.Version
	if info == nil {
		info = version.New(args.Name)
	}
	if err := VersionCheck(opts, info); err != nil {
		return nil, err
	}
	if err := CompletionCheck(opts, p, args.Name, args.ArgTypes); err != nil {
		return nil, err
	}

	if len(opts.Args) < 1 {
		return nil, p.Usage(ErrPathRequired.Error(), ErrPathRequired)
	}

	opts.Paths = opts.Args

	opts.Headers = make(map[string]string, len(opts.Header))
	for _, h := range opts.Header {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, p.Usage(ErrMalformedHeader.Error(), ErrMalformedHeader)
		}
		opts.Headers[name] = strings.TrimSpace(value)
	}

	opts.Values = make(map[string]any)

	opts.Log.Debug("common options parsed",
		zap.Strings("paths", opts.Paths),
		zap.Int("headers", len(opts.Headers)))

	out, err := args.ParseCmdOptions(opts, p)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, exitErr
		}
		return nil, p.Usage(err.Error(), err)
	}

	return out, nil
}
