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

package objclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ObjectPath
	}{
		{"bucket only", "/alice", ObjectPath{Bucket: "alice"}},
		{"bucket trailing slash", "/alice/", ObjectPath{Bucket: "alice"}},
		{"object", "/alice/docs/a.txt", ObjectPath{Bucket: "alice", Key: "docs/a.txt"}},
		{"directory", "/alice/docs/", ObjectPath{Bucket: "alice", Key: "docs/"}},
		{"no leading slash", "alice/a.txt", ObjectPath{Bucket: "alice", Key: "a.txt"}},
		{"cleaned", "/alice//docs/../a.txt", ObjectPath{Bucket: "alice", Key: "a.txt"}},
		{"home", "~~/docs/a.txt", ObjectPath{Bucket: "bob", Key: "docs/a.txt"}},
		{"home root", "~~", ObjectPath{Bucket: "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.raw, "bob")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	_, err := ParsePath("", "bob")
	assert.ErrorIs(t, err, errEmptyPath)

	_, err = ParsePath("/", "bob")
	assert.ErrorIs(t, err, errBucketMissing)

	_, err = ParsePath("~~/a", "")
	assert.ErrorIs(t, err, errNoAccount)
}

func TestObjectPath_String(t *testing.T) {
	assert.Equal(t, "/alice", ObjectPath{Bucket: "alice"}.String())
	assert.Equal(t, "/alice/a/b", ObjectPath{Bucket: "alice", Key: "a/b"}.String())
}
