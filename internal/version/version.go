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

package version

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info holds version information for a tool.
type Info struct {
	// ToolName is the name of the tool
	ToolName string
	// Version is set via ldflags or from build info
	Version string
	// CommitSHA is set via ldflags or from build info
	CommitSHA string
	// BuildTimestamp is set via ldflags or from build info
	BuildTimestamp string
}

// New creates a new Info with default values.
func New(toolName string) *Info {
	return &Info{
		ToolName:       toolName,
		Version:        "dev",
		CommitSHA:      "unknown",
		BuildTimestamp: "unknown",
	}
}

// Get returns version information, attempting to read from build info if not set via ldflags.
func (i *Info) Get() (version, commit, timestamp string) {
	version = i.Version
	commit = i.CommitSHA
	timestamp = i.BuildTimestamp

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}

		var vcsRevision string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				vcsRevision = setting.Value
				if commit == "unknown" && len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				}
			case "vcs.time":
				if timestamp == "unknown" {
					timestamp = setting.Value
				}
			}
		}

		if version == "dev" && vcsRevision != "" {
			version = shortSHA(vcsRevision)
		}
	}

	if version == "dev" {
		if gitVersion := gitOutput("describe", "--tags", "--always", "--dirty"); gitVersion != "" {
			version = gitVersion
		}
	}

	if commit == "unknown" {
		if gitCommit := gitOutput("rev-parse", "--short", "HEAD"); gitCommit != "" {
			commit = gitCommit
		}
	}

	return Canonical(version), commit, timestamp
}

// Canonical returns v in "vMAJOR.MINOR.PATCH[-PRE][+META]" form when it is a
// semantic version, and v unchanged otherwise (e.g. "dev" or a commit hash).
func Canonical(v string) string {
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return v
	}
	return "v" + sv.String()
}

func shortSHA(rev string) string {
	if len(rev) >= 7 {
		return rev[:7]
	}
	return rev
}

func gitOutput(args ...string) string {
	output, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// Fprint writes formatted version information to w.
func (i *Info) Fprint(w io.Writer) {
	version, commit, timestamp := i.Get()
	fmt.Fprintf(w, "%s version %s\n", i.ToolName, version)
	fmt.Fprintf(w, "  commit:    %s\n", commit)
	fmt.Fprintf(w, "  built:     %s\n", timestamp)
	fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
	fmt.Fprintf(w, "  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// Text returns the output of Fprint as a string.
func (i *Info) Text() string {
	var sb strings.Builder
	i.Fprint(&sb)
	return sb.String()
}

// String returns a one-line version string using the explicitly set Version field.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s", i.ToolName, Canonical(i.Version))
}
