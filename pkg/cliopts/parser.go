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
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Parser owns the option schema shared by every objtool command.
//
// Commands add their own flags through Flags() before calling ParseOptions.
type Parser struct {
	name string
	fs   *pflag.FlagSet

	help       bool
	version    bool
	completion bool
	verbose    int
	headers    []string

	url      string
	account  string
	subuser  string
	keyID    string
	roles    []string
	insecure bool
	region   string
}

// NewParser creates a Parser for the named command with the common schema registered.
func NewParser(name string) *Parser {
	p := &Parser{name: name}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVarP(&p.help, "help", "h", false, "Print this help and exit.")
	fs.BoolVar(&p.version, "version", false, "Print version and exit.")
	fs.CountVarP(&p.verbose, "verbose", "v", "Verbose output. Repeat for more verbosity.")
	fs.StringArrayVarP(&p.headers, "header", "H", nil, `HTTP header to send with each request ("Name: value"). Repeatable.`)
	fs.StringVarP(&p.account, "account", "a", "", "Account name (env: "+EnvAccount+").")
	fs.StringVar(&p.subuser, "subuser", "", "Account subuser, sent as the Subuser header (env: "+EnvSubuser+").")
	fs.StringVarP(&p.keyID, "key-id", "k", "", "Access key ID (env: "+EnvKeyID+").")
	fs.StringVarP(&p.url, "url", "u", "", "Object store URL (env: "+EnvURL+").")
	fs.BoolVarP(&p.insecure, "insecure", "i", false, "Do not validate the server TLS certificate (env: "+EnvInsecure+").")
	fs.StringSliceVar(&p.roles, "role", nil, "Comma separated roles to assume (env: "+EnvRole+").")
	fs.StringVar(&p.region, "region", "", "Object store region (env: "+EnvRegion+").")
	fs.BoolVar(&p.completion, "completion", false, "Print bash completion code and exit.")
	_ = fs.MarkHidden("completion")

	p.fs = fs
	return p
}

// Name returns the command name.
func (p *Parser) Name() string {
	return p.name
}

// Flags exposes the underlying flag set so commands can register their own flags
// and read them back from their parse callback.
func (p *Parser) Flags() *pflag.FlagSet {
	return p.fs
}

// Parse parses argv and resolves connection settings.
//
// Connection settings not given on the command line are read from the
// environment first, then from the profile file. A malformed environment or
// profile is ignored when help, version or completion output is requested.
func (p *Parser) Parse(argv []string, environ map[string]string) (*Options, error) {
	if err := p.fs.Parse(argv); err != nil {
		return nil, err
	}

	informational := p.help || p.version || p.completion

	envs, err := readEnvs(environ)
	if err != nil && !informational {
		return nil, err
	}

	profile, err := readProfile(envs.ConfigPath)
	if err != nil && !informational {
		return nil, err
	}

	opts := &Options{
		Args:       append([]string{}, p.fs.Args()...),
		Help:       p.help,
		Version:    p.version,
		Completion: p.completion,
		Verbose:    p.verbose,
		Header:     append([]string{}, p.headers...),
		SecretKey:  envs.SecretKey,
		LogLevel:   envs.LogLevel,
	}

	opts.URL = p.pick("url", p.url, envs.URL, profile.URL)
	opts.Account = p.pick("account", p.account, envs.Account, profile.Account)
	opts.Subuser = p.pick("subuser", p.subuser, envs.Subuser, profile.Subuser)
	opts.KeyID = p.pick("key-id", p.keyID, envs.KeyID, profile.KeyID)
	opts.Region = p.pick("region", p.region, envs.Region, profile.Region)

	switch {
	case p.fs.Changed("role"):
		opts.Role = append([]string{}, p.roles...)
	case len(envs.Role) > 0:
		opts.Role = envs.Role
	default:
		opts.Role = profile.Role
	}

	opts.Insecure = p.insecure
	if !p.fs.Changed("insecure") {
		opts.Insecure = envs.Insecure || profile.Insecure
	}

	return opts, nil
}

// pick returns the flag value when the flag was set, else the first non-empty fallback.
func (p *Parser) pick(flag, value string, fallbacks ...string) string {
	if p.fs.Changed(flag) {
		return value
	}
	for _, v := range fallbacks {
		if v != "" {
			return v
		}
	}
	return ""
}

// HelpText renders the usage line, the generated option help and the
// environment variables every command reads.
func (p *Parser) HelpText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "usage: %s [OPTIONS] %s\n", p.name, PositionalHint)
	sb.WriteString("options:\n")
	sb.WriteString(strings.TrimRight(p.fs.FlagUsages(), "\n"))
	sb.WriteString("\nenvironment:\n")
	sb.WriteString(formatEnvList[Envs]())
	return sb.String()
}

// Usage builds the usage-error outcome for msg.
func (p *Parser) Usage(msg string, cause error) *ExitError {
	err := fmt.Errorf("%w: %s", ErrUsage, msg)
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrUsage, cause)
	}
	return &ExitError{
		Code:    1,
		Message: fmt.Sprintf("%s: %s\n%s", p.name, msg, p.HelpText()),
		Err:     err,
	}
}

// Help builds the informational outcome for --help.
func (p *Parser) Help() *ExitError {
	return exitOK(p.HelpText())
}
