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

// Package cliopts parses the options shared by every objtool command.
//
// A command builds a Parser, registers its own flags on Parser.Flags(), and
// calls ParseOptions with a callback for its command-specific checks:
//
//	p := cliopts.NewParser("objls")
//	long := p.Flags().BoolP("long", "l", false, "Long listing format.")
//
//	opts, err := cliopts.ParseOptions(cliopts.Args{
//	    Name:     "objls",
//	    Parser:   p,
//	    ArgTypes: []string{"opath"},
//	    Log:      cliopts.NewLogHandle(os.Stderr),
//	    ParseCmdOptions: func(opts *cliopts.Options, p *cliopts.Parser) (*cliopts.Options, error) {
//	        opts.Values["long"] = *long
//	        return opts, nil
//	    },
//	})
//
// ParseOptions never exits the process. Help, version and completion requests
// and every usage error come back as an *ExitError for the caller to print.
package cliopts
