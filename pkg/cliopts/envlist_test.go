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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEnvList(t *testing.T) {
	type sample struct {
		Name   string   `env:"SAMPLE_NAME"`
		Level  string   `env:"SAMPLE_LEVEL,required" envDefault:"info"`
		Tags   []string `env:"SAMPLE_TAGS"           envSeparator:","`
		Ignore string
	}

	got := formatEnvList[sample]()

	assert.Equal(t, ""+
		"      SAMPLE_NAME\n"+
		"      SAMPLE_LEVEL  (default \"info\")\n"+
		"      SAMPLE_TAGS   (\",\" separated)\n", got)
}

func TestHelpText_ListsEnvironment(t *testing.T) {
	text := NewParser("objls").HelpText()

	assert.Contains(t, text, "\nenvironment:\n")
	assert.Contains(t, text, "OBJ_SECRET_KEY")
	assert.Contains(t, text, `OBJ_LOG_LEVEL     (default "info")`)
	assert.Contains(t, text, `OBJ_ROLE          ("," separated)`)
}
