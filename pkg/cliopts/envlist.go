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
	"fmt"
	"reflect"
	"strings"
)

// formatEnvList lists the environment variables read into T, one per line,
// in field order. Defaults and list separators are taken from the field tags.
func formatEnvList[T any]() string {
	type envLine struct {
		name string
		note string
	}

	lines := make([]envLine, 0)
	width := 0

	rt := reflect.TypeFor[T]()
	for i := range rt.NumField() {
		field := rt.Field(i)
		name, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		name, _, _ = strings.Cut(name, ",")

		var notes []string
		if def, ok := field.Tag.Lookup("envDefault"); ok {
			notes = append(notes, fmt.Sprintf("default %q", def))
		}
		if sep, ok := field.Tag.Lookup("envSeparator"); ok {
			notes = append(notes, fmt.Sprintf("%q separated", sep))
		}

		lines = append(lines, envLine{name: name, note: strings.Join(notes, ", ")})
		width = max(width, len(name))
	}

	var sb strings.Builder
	for _, l := range lines {
		if l.note == "" {
			fmt.Fprintf(&sb, "      %s\n", l.name)
			continue
		}
		fmt.Fprintf(&sb, "      %-*s  (%s)\n", width, l.name, l.note)
	}
	return sb.String()
}
