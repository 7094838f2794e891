//go:build unit

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

package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/alexandremahdhaoui/objtool/internal/version"
)

func TestNew(t *testing.T) {
	info := version.New("test-tool")
	if info.ToolName != "test-tool" {
		t.Errorf("Expected ToolName 'test-tool', got '%s'", info.ToolName)
	}
	if info.Version != "dev" {
		t.Errorf("Expected Version 'dev', got '%s'", info.Version)
	}
	if info.CommitSHA != "unknown" {
		t.Errorf("Expected CommitSHA 'unknown', got '%s'", info.CommitSHA)
	}
	if info.BuildTimestamp != "unknown" {
		t.Errorf("Expected BuildTimestamp 'unknown', got '%s'", info.BuildTimestamp)
	}
}

func TestGet(t *testing.T) {
	info := version.New("test-tool")
	info.Version = "1.0.0"
	info.CommitSHA = "abc1234"
	info.BuildTimestamp = "2025-01-01T00:00:00Z"

	v, c, ts := info.Get()
	if v != "v1.0.0" {
		t.Errorf("Expected version 'v1.0.0', got '%s'", v)
	}
	if c != "abc1234" {
		t.Errorf("Expected commit 'abc1234', got '%s'", c)
	}
	if ts != "2025-01-01T00:00:00Z" {
		t.Errorf("Expected timestamp '2025-01-01T00:00:00Z', got '%s'", ts)
	}
}

func TestString(t *testing.T) {
	info := version.New("test-tool")
	info.Version = "v1.2.3"

	str := info.String()
	expected := "test-tool version v1.2.3"
	if str != expected {
		t.Errorf("Expected '%s', got '%s'", expected, str)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{"v1.2.3-rc.1", "v1.2.3-rc.1"},
		{"v0.4.0-3-gabcdef0-dirty", "v0.4.0-3-gabcdef0-dirty"},
		{"dev", "dev"},
		{"1234567", "1234567"},
		{"abc1234", "abc1234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := version.Canonical(tt.in); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	info := version.New("objls")
	info.Version = "v2.0.0"
	info.CommitSHA = "deadbee"
	info.BuildTimestamp = "2025-01-01T00:00:00Z"

	out := info.Text()

	for _, want := range []string{
		"objls version v2.0.0",
		"commit:    deadbee",
		"built:     2025-01-01T00:00:00Z",
		"go:        " + runtime.Version(),
		"platform:  " + runtime.GOOS + "/" + runtime.GOARCH,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
