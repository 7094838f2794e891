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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/alexandremahdhaoui/objtool/internal/cli"
	"github.com/alexandremahdhaoui/objtool/pkg/cliopts"
	"github.com/alexandremahdhaoui/objtool/pkg/objclient"
)

const Name = "objget"

// Version information (set via ldflags during build)
var (
	Version        = "dev"
	CommitSHA      = "unknown"
	BuildTimestamp = "unknown"
)

var errOutputSinglePath = errors.New("--output requires exactly one path")

func main() {
	cli.Bootstrap(newConfig())
}

func newConfig() cli.Config {
	return cli.Config{
		Name:           Name,
		Version:        Version,
		CommitSHA:      CommitSHA,
		BuildTimestamp: BuildTimestamp,
		ArgTypes:       []string{"opath"},
		SetupFlags: func(p *cliopts.Parser) {
			p.Flags().StringP("output", "o", "", "Write the object to this local file instead of stdout.")
		},
		ParseCmdOptions: parseCmdOptions,
		RunCLI:          run,
	}
}

func parseCmdOptions(opts *cliopts.Options, p *cliopts.Parser) (*cliopts.Options, error) {
	output, err := p.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if output != "" && len(opts.Paths) != 1 {
		return nil, errOutputSinglePath
	}
	opts.Values["output"] = output
	return opts, nil
}

func run(ctx context.Context, opts *cliopts.Options, stdout io.Writer) error {
	client, err := objclient.New(ctx, opts)
	if err != nil {
		return err
	}

	w := stdout
	if output, _ := opts.Values["output"].(string); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				opts.Log.Warn("failed to close output file", zap.String("file", output), zap.Error(err))
			}
		}()
		w = f
	}

	for _, raw := range opts.Paths {
		p, err := client.Path(raw)
		if err != nil {
			return err
		}
		if _, err := client.Get(ctx, p, w); err != nil {
			return err
		}
	}

	return nil
}
