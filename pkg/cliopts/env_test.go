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

package cliopts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBinEnv(t *testing.T) {
	valid := func() *Options {
		return &Options{URL: "https://objects.example.com", Account: "alice", KeyID: "AKID"}
	}

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{"valid", func(*Options) {}, nil},
		{"plain http", func(o *Options) { o.URL = "http://localhost:9000" }, nil},
		{"missing url", func(o *Options) { o.URL = "" }, errURLRequired},
		{"bad scheme", func(o *Options) { o.URL = "ftp://objects.example.com" }, errURLScheme},
		{"missing account", func(o *Options) { o.Account = "" }, errAccountRequired},
		{"missing key id", func(o *Options) { o.KeyID = "" }, errKeyIDRequired},
		{"help skips checks", func(o *Options) { *o = Options{Help: true} }, nil},
		{"version skips checks", func(o *Options) { *o = Options{Version: true} }, nil},
		{"completion skips checks", func(o *Options) { *o = Options{Completion: true} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid()
			tt.mutate(opts)

			err := CheckBinEnv(opts)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadProfile_Missing(t *testing.T) {
	profile, err := readProfile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Profile{}, profile)
}

func TestReadEnvs_Defaults(t *testing.T) {
	envs, err := readEnvs(map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, "info", envs.LogLevel)
	assert.Empty(t, envs.URL)
	assert.Nil(t, envs.Role)
}
