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
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/alexandremahdhaoui/objtool/internal/cli"
	"github.com/alexandremahdhaoui/objtool/pkg/cliopts"
	"github.com/alexandremahdhaoui/objtool/pkg/objclient"
)

const Name = "objls"

// Version information (set via ldflags during build)
var (
	Version        = "dev"
	CommitSHA      = "unknown"
	BuildTimestamp = "unknown"
)

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
			p.Flags().BoolP("long", "l", false, "Use a long listing format.")
		},
		ParseCmdOptions: parseCmdOptions,
		RunCLI:          run,
	}
}

func parseCmdOptions(opts *cliopts.Options, p *cliopts.Parser) (*cliopts.Options, error) {
	long, err := p.Flags().GetBool("long")
	if err != nil {
		return nil, err
	}
	opts.Values["long"] = long
	return opts, nil
}

func run(ctx context.Context, opts *cliopts.Options, stdout io.Writer) error {
	client, err := objclient.New(ctx, opts)
	if err != nil {
		return err
	}

	long, _ := opts.Values["long"].(bool)

	for i, raw := range opts.Paths {
		p, err := client.Path(raw)
		if err != nil {
			return err
		}

		entries, err := client.List(ctx, p)
		if err != nil {
			return err
		}

		if len(opts.Paths) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(stdout)
			}
			_, _ = fmt.Fprintf(stdout, "%s:\n", p)
		}

		if err := printEntries(stdout, entries, long); err != nil {
			return err
		}
	}

	return nil
}

func printEntries(w io.Writer, entries []objclient.Entry, long bool) error {
	if !long {
		for _, e := range entries {
			name := e.Name
			if e.Dir {
				name += "/"
			}
			_, _ = fmt.Fprintln(w, name)
		}
		return nil
	}

	if len(entries) == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options = table.OptionsNoBordersAndSeparators
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},  // TYPE
		{Number: 2, Align: text.AlignRight}, // SIZE
		{Number: 3, Align: text.AlignLeft},  // MODIFIED
		{Number: 4, Align: text.AlignLeft},  // NAME
	})

	for _, e := range entries {
		if e.Dir {
			tw.AppendRow(table.Row{"d", "-", "", e.Name + "/"})
			continue
		}
		tw.AppendRow(table.Row{"-", e.Size, e.Modified.UTC().Format(time.RFC3339), e.Name})
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
