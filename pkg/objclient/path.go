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
	"errors"
	"fmt"
	"path"
	"strings"
)

// HomePrefix expands to "/<account>" at the start of a path.
const HomePrefix = "~~"

var (
	errEmptyPath     = errors.New("path is empty")
	errBucketMissing = errors.New("path has no bucket")
	errNoAccount     = errors.New("cannot expand " + HomePrefix + " without an account")
)

// ObjectPath is a remote path split into bucket and key.
// Key is empty when the path names the bucket itself.
type ObjectPath struct {
	Bucket string
	Key    string
}

// String returns the path in "/bucket/key" form.
func (p ObjectPath) String() string {
	if p.Key == "" {
		return "/" + p.Bucket
	}
	return "/" + p.Bucket + "/" + p.Key
}

// ParsePath parses a remote path of the form "/bucket/key...".
// A leading "~~" is replaced with "/<account>".
func ParsePath(raw, account string) (ObjectPath, error) {
	if raw == "" {
		return ObjectPath{}, errEmptyPath
	}

	if rest, ok := strings.CutPrefix(raw, HomePrefix); ok {
		if account == "" {
			return ObjectPath{}, fmt.Errorf("%s: %w", raw, errNoAccount)
		}
		raw = "/" + account + rest
	}

	trailingSlash := strings.HasSuffix(raw, "/")
	cleaned := strings.TrimPrefix(path.Clean("/"+raw), "/")
	if cleaned == "" {
		return ObjectPath{}, fmt.Errorf("%s: %w", raw, errBucketMissing)
	}

	bucket, key, _ := strings.Cut(cleaned, "/")
	if key != "" && trailingSlash {
		key += "/"
	}

	return ObjectPath{Bucket: bucket, Key: key}, nil
}
