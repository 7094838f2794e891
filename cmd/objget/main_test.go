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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremahdhaoui/objtool/internal/cli"
	"github.com/alexandremahdhaoui/objtool/internal/testutil"
)

func runObjget(t *testing.T, argv ...string) (*testutil.ObjectStore, int, string, string) {
	t.Helper()
	store := testutil.NewObjectStore(t, map[string]string{
		"alice/a.txt": "hello\n",
		"alice/b.txt": "world\n",
	})

	cfg := newConfig()
	cfg.Environ = store.Environ(t, "alice")

	var stdout, stderr bytes.Buffer
	code := cli.Run(context.Background(), cfg, argv, &stdout, &stderr)
	return store, code, stdout.String(), stderr.String()
}

func TestObjget_Stdout(t *testing.T) {
	_, code, stdout, stderr := runObjget(t, "~~/a.txt", "/alice/b.txt")

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "hello\nworld\n", stdout)
}

func TestObjget_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.txt")

	_, code, stdout, stderr := runObjget(t, "-o", out, "~~/a.txt")

	assert.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestObjget_OutputRequiresSinglePath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.txt")

	_, code, _, stderr := runObjget(t, "-o", out, "~~/a.txt", "~~/b.txt")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "objget: --output requires exactly one path")
	assert.NoFileExists(t, out)
}

func TestObjget_Headers(t *testing.T) {
	store, code, _, stderr := runObjget(t, "-H", "X-Trace: a:b", "--role", "reader", "~~/a.txt")

	require.Equal(t, 0, code, stderr)
	req := store.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "a:b", req.Header.Get("X-Trace"))
	assert.Equal(t, "reader", req.Header.Get("Role"))
	assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
}

func TestObjget_MalformedHeader(t *testing.T) {
	store, code, _, stderr := runObjget(t, "-H", "NoColonHere", "~~/a.txt")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `header must be in the form of "[header]: value"`)
	assert.Empty(t, store.Requests())
}

func TestObjget_Missing(t *testing.T) {
	_, code, _, stderr := runObjget(t, "~~/nope.txt")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "objget: failed to get /alice/nope.txt")
}

func TestObjget_InvalidHeaderName(t *testing.T) {
	store, code, _, stderr := runObjget(t, "-H", " X-Foo : bar", "~~/a.txt")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `objget: invalid header name: " X-Foo "`)
	assert.Empty(t, store.Requests())
}
