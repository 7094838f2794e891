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

// Package cli provides common CLI bootstrapping functionality for objtool commands.
//
// This package removes duplicated main() logic across the command binaries
// by providing a unified bootstrap mechanism that handles:
//   - Version information initialization from ldflags
//   - Shared option parsing through cliopts.ParseOptions
//   - Printing help, version, completion and usage output
//   - Standardized error handling and exit codes
//
// Example usage:
//
//	package main
//
//	import (
//	    "github.com/alexandremahdhaoui/objtool/internal/cli"
//	)
//
//	// Version information (set via ldflags)
//	var (
//	    Version        = "dev"
//	    CommitSHA      = "unknown"
//	    BuildTimestamp = "unknown"
//	)
//
//	func main() {
//	    cli.Bootstrap(cli.Config{
//	        Name:           "my-command",
//	        Version:        Version,
//	        CommitSHA:      CommitSHA,
//	        BuildTimestamp: BuildTimestamp,
//	        ArgTypes:       []string{"opath"},
//	        RunCLI:         runCLI,
//	    })
//	}
package cli
