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
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexandremahdhaoui/objtool/internal/version"
)

// Positional argument types understood by the completion script.
// Any other type (e.g. "opath" for remote object paths) completes nothing.
const (
	ArgTypeFile = "file"
	ArgTypeDir  = "dir"
)

// VersionCheck returns an informational ExitError carrying the version text
// when --version was given, and nil otherwise.
func VersionCheck(opts *Options, info *version.Info) error {
	if !opts.Version {
		return nil
	}
	return exitOK(info.Text())
}

// CompletionCheck returns an informational ExitError carrying a bash completion
// script for the command when --completion was given, and nil otherwise.
func CompletionCheck(opts *Options, p *Parser, name string, argTypes []string) error {
	if !opts.Completion {
		return nil
	}

	script, err := BashCompletion(p, name, argTypes)
	if err != nil {
		return err
	}

	return exitOK(script)
}

// BashCompletion generates a bash completion script covering the parser's flags.
// Positional arguments complete according to argTypes; the last type repeats.
func BashCompletion(p *Parser, name string, argTypes []string) (string, error) {
	cmd := &cobra.Command{
		Use:                    name,
		BashCompletionFunction: argTypesFunc(name, argTypes),
	}
	cmd.Flags().AddFlagSet(p.Flags())

	var buf bytes.Buffer
	if err := cmd.GenBashCompletion(&buf); err != nil {
		return "", fmt.Errorf("generating bash completion for %s: %w", name, err)
	}

	return buf.String(), nil
}

func argTypesFunc(name string, argTypes []string) string {
	quoted := make([]string, 0, len(argTypes))
	for _, t := range argTypes {
		quoted = append(quoted, fmt.Sprintf("%q", t))
	}

	return fmt.Sprintf(`__%[1]s_custom_func() {
    local -a argtypes=(%[2]s)
    local n=${#argtypes[@]}
    local idx=${#nouns[@]}
    if (( n == 0 )); then
        return
    fi
    if (( idx >= n )); then
        idx=$(( n - 1 ))
    fi
    case "${argtypes[$idx]}" in
    %[3]s)
        COMPREPLY=( $(compgen -f -- "${cur}") )
        ;;
    %[4]s)
        COMPREPLY=( $(compgen -d -- "${cur}") )
        ;;
    esac
}
`, name, strings.Join(quoted, " "), ArgTypeFile, ArgTypeDir)
}
