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

// Package testutil provides an in-memory S3-compatible object store for tests.
package testutil

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

// ModTime is the last-modified time reported for every object.
var ModTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// ObjectStore serves path-style GetObject and ListObjectsV2 requests from a
// map of "bucket/key" to content, and records every request it receives.
type ObjectStore struct {
	URL string

	mu       sync.Mutex
	objects  map[string]string
	requests []*http.Request
}

// NewObjectStore starts an ObjectStore holding objects. The server is closed
// when the test ends.
func NewObjectStore(t *testing.T, objects map[string]string) *ObjectStore {
	t.Helper()

	s := newObjectStore(objects)
	srv := httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(srv.Close)
	s.URL = srv.URL

	return s
}

// NewTLSObjectStore is NewObjectStore served over HTTPS with a self-signed
// certificate that clients do not trust.
func NewTLSObjectStore(t *testing.T, objects map[string]string) *ObjectStore {
	t.Helper()

	s := newObjectStore(objects)
	srv := httptest.NewTLSServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(srv.Close)
	s.URL = srv.URL

	return s
}

func newObjectStore(objects map[string]string) *ObjectStore {
	s := &ObjectStore{objects: make(map[string]string, len(objects))}
	for k, v := range objects {
		s.objects[k] = v
	}
	return s
}

// Requests returns a copy of the recorded requests.
func (s *ObjectStore) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request{}, s.requests...)
}

// LastRequest returns the most recent request, or nil.
func (s *ObjectStore) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// Environ returns an environment pointing objtool commands at the store.
func (s *ObjectStore) Environ(t *testing.T, account string) map[string]string {
	t.Helper()
	return map[string]string{
		"OBJ_URL":        s.URL,
		"OBJ_ACCOUNT":    account,
		"OBJ_KEY_ID":     "AKIDEXAMPLE",
		"OBJ_SECRET_KEY": "secret",
		"OBJ_CONFIG":     filepath.Join(t.TempDir(), "missing.yaml"),
	}
}

func (s *ObjectStore) serveHTTP(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, req.Clone(context.Background()))
	s.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")

	switch {
	case req.Method != http.MethodGet:
		w.WriteHeader(http.StatusMethodNotAllowed)
	case key == "" && req.URL.Query().Get("list-type") == "2":
		s.list(w, bucket, req.URL.Query().Get("prefix"), req.URL.Query().Get("delimiter"))
	default:
		s.get(w, bucket, key)
	}
}

func (s *ObjectStore) get(w http.ResponseWriter, bucket, key string) {
	s.mu.Lock()
	content, ok := s.objects[bucket+"/"+key]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "NoSuchKey")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Last-Modified", ModTime.Format(http.TimeFormat))
	_, _ = w.Write([]byte(content))
}

type listResult struct {
	XMLName        xml.Name       `xml:"http://s3.amazonaws.com/doc/2006-03-01/ ListBucketResult"`
	Name           string         `xml:"Name"`
	Prefix         string         `xml:"Prefix"`
	Delimiter      string         `xml:"Delimiter,omitempty"`
	KeyCount       int            `xml:"KeyCount"`
	MaxKeys        int            `xml:"MaxKeys"`
	IsTruncated    bool           `xml:"IsTruncated"`
	Contents       []listObject   `xml:"Contents"`
	CommonPrefixes []commonPrefix `xml:"CommonPrefixes"`
}

type listObject struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int    `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}

func (s *ObjectStore) list(w http.ResponseWriter, bucket, prefix, delimiter string) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.objects))
	found := false
	for k := range s.objects {
		b, key, _ := strings.Cut(k, "/")
		if b != bucket {
			continue
		}
		found = true
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "NoSuchBucket")
		return
	}

	sort.Strings(keys)

	out := listResult{Name: bucket, Prefix: prefix, Delimiter: delimiter, MaxKeys: 1000}
	seen := map[string]bool{}
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		if delimiter != "" {
			if i := strings.Index(rest, delimiter); i >= 0 {
				cp := prefix + rest[:i+len(delimiter)]
				if !seen[cp] {
					seen[cp] = true
					out.CommonPrefixes = append(out.CommonPrefixes, commonPrefix{Prefix: cp})
				}
				continue
			}
		}
		s.mu.Lock()
		size := len(s.objects[bucket+"/"+key])
		s.mu.Unlock()
		out.Contents = append(out.Contents, listObject{
			Key:          key,
			LastModified: ModTime.Format("2006-01-02T15:04:05.000Z"),
			ETag:         `"etag"`,
			Size:         size,
			StorageClass: "STANDARD",
		})
	}
	out.KeyCount = len(out.Contents) + len(out.CommonPrefixes)

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(out)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header + "<Error><Code>" + code + "</Code><Message>" + code + "</Message></Error>"))
}
