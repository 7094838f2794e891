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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvURL       = "OBJ_URL"
	EnvAccount   = "OBJ_ACCOUNT"
	EnvSubuser   = "OBJ_SUBUSER"
	EnvKeyID     = "OBJ_KEY_ID"
	EnvSecretKey = "OBJ_SECRET_KEY"
	EnvRole      = "OBJ_ROLE"
	EnvInsecure  = "OBJ_TLS_INSECURE"
	EnvRegion    = "OBJ_REGION"
	EnvLogLevel  = "OBJ_LOG_LEVEL"
	EnvConfig    = "OBJ_CONFIG"
)

// ----------------------------------------------------- ENVS ------------------------------------------------------- //

// Envs holds the environment variables read by every objtool command.
type Envs struct {
	URL       string   `env:"OBJ_URL"`
	Account   string   `env:"OBJ_ACCOUNT"`
	Subuser   string   `env:"OBJ_SUBUSER"`
	KeyID     string   `env:"OBJ_KEY_ID"`
	SecretKey string   `env:"OBJ_SECRET_KEY"`
	Role      []string `env:"OBJ_ROLE"         envSeparator:","`
	Insecure  bool     `env:"OBJ_TLS_INSECURE"`
	Region    string   `env:"OBJ_REGION"`
	LogLevel  string   `env:"OBJ_LOG_LEVEL"    envDefault:"info"`
	// ConfigPath overrides the profile location.
	ConfigPath string `env:"OBJ_CONFIG"`
}

var errReadingEnvVars = errors.New("reading environment variables")

// readEnvs reads Envs from environ, or from the process environment when environ is nil.
func readEnvs(environ map[string]string) (Envs, error) {
	out := Envs{} //nolint:exhaustruct // unmarshal

	if err := env.ParseWithOptions(&out, env.Options{Environment: environ}); err != nil {
		return Envs{}, fmt.Errorf("%w: %w", errReadingEnvVars, err)
	}

	return out, nil
}

// --------------------------------------------------- PROFILE ------------------------------------------------------ //

// ProfileFileName is the name of the profile file under the user config directory.
const ProfileFileName = "config.yaml"

// Profile holds connection defaults loaded from the profile file.
type Profile struct {
	URL      string   `yaml:"url"`
	Account  string   `yaml:"account"`
	Subuser  string   `yaml:"subuser,omitempty"`
	KeyID    string   `yaml:"keyId"`
	Role     []string `yaml:"role,omitempty"`
	Insecure bool     `yaml:"insecure,omitempty"`
	Region   string   `yaml:"region,omitempty"`
}

// DefaultProfilePath returns <user config dir>/objtool/config.yaml.
func DefaultProfilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "objtool", ProfileFileName), nil
}

// readProfile loads the profile at path, or at the default location when path is empty.
// A missing file yields an empty Profile.
func readProfile(path string) (Profile, error) {
	if path == "" {
		var err error
		if path, err = DefaultProfilePath(); err != nil {
			return Profile{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return profile, nil
}

// --------------------------------------------------- CHECKS ------------------------------------------------------- //

var (
	errURLRequired     = errors.New("url is a required argument")
	errURLScheme       = errors.New("url must start with http:// or https://")
	errAccountRequired = errors.New("account is a required argument")
	errKeyIDRequired   = errors.New("key-id is a required argument")
)

// CheckBinEnv validates the connection settings every command needs.
// Nothing is checked when help, version or completion output was requested.
func CheckBinEnv(opts *Options) error {
	if opts.Help || opts.Version || opts.Completion {
		return nil
	}

	if opts.URL == "" {
		return errURLRequired
	}
	if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
		return errURLScheme
	}
	if opts.Account == "" {
		return errAccountRequired
	}
	if opts.KeyID == "" {
		return errKeyIDRequired
	}

	return nil
}
