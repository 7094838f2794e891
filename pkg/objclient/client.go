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
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"

	"github.com/alexandremahdhaoui/objtool/pkg/cliopts"
)

const (
	// DefaultRegion is used when no region is configured.
	DefaultRegion = "us-east-1"
	// RequestIDHeader carries a per-request UUID.
	RequestIDHeader = "X-Request-Id"
	// RoleHeader carries the comma separated roles to assume.
	RoleHeader = "Role"
	// SubuserHeader names the subuser of the account the credentials belong to.
	SubuserHeader = "Subuser"
)

// ErrInvalidHeader is returned by New when a user header name is not a valid HTTP token.
var ErrInvalidHeader = errors.New("invalid header name")

// Client wraps the S3 SDK client for the operations objtool commands need.
type Client struct {
	client  *s3.Client
	account string
	log     *zap.Logger
}

// New creates a Client from parsed options.
//
// Requests go to opts.URL with path-style addressing and static credentials
// (KeyID / SecretKey). Every request carries opts.Headers, the Role header when
// roles are set, the Subuser header when a subuser is set, and a fresh
// X-Request-Id.
func New(ctx context.Context, opts *cliopts.Options) (*Client, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	for name := range opts.Headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, name)
		}
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(normalizeRegion(opts.Region)),
		config.WithBaseEndpoint(opts.URL),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.KeyID, opts.SecretKey, ""),
		),
		config.WithAPIOptions([]func(*middleware.Stack) error{
			headerMiddleware(requestHeaders{
				headers: opts.Headers,
				roles:   opts.Role,
				subuser: opts.Subuser,
			}),
		}),
	}

	if opts.Insecure {
		log.Debug("TLS certificate verification disabled")
		loadOpts = append(loadOpts, config.WithHTTPClient(insecureHTTPClient()))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Debug("object store client created",
		zap.String("url", opts.URL),
		zap.String("account", opts.Account),
		zap.String("subuser", opts.Subuser))

	return &Client{
		client:  client,
		account: opts.Account,
		log:     log,
	}, nil
}

// Path parses raw relative to the client's account.
func (c *Client) Path(raw string) (ObjectPath, error) {
	return ParsePath(raw, c.account)
}

// Entry is one item of a listing.
type Entry struct {
	Name     string
	Dir      bool
	Size     int64
	Modified time.Time
}

// List returns the entries directly under p, directories first.
// When p names a bucket, the bucket root is listed.
func (c *Client) List(ctx context.Context, p ObjectPath) ([]Entry, error) {
	prefix := p.Key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(p.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var dirs, objects []Entry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", p, err)
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			dirs = append(dirs, Entry{Name: name, Dir: true})
		}
		for _, obj := range page.Contents {
			objects = append(objects, Entry{
				Name:     strings.TrimPrefix(aws.ToString(obj.Key), prefix),
				Size:     aws.ToInt64(obj.Size),
				Modified: aws.ToTime(obj.LastModified),
			})
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	c.log.Debug("listed path",
		zap.Stringer("path", p),
		zap.Int("dirs", len(dirs)),
		zap.Int("objects", len(objects)))

	return append(dirs, objects...), nil
}

// Get streams the object at p into w and returns the number of bytes written.
func (c *Client) Get(ctx context.Context, p ObjectPath, w io.Writer) (int64, error) {
	if p.Key == "" {
		return 0, fmt.Errorf("%s: object key is required", p)
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(p.Key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", p, err)
	}
	defer func() {
		if err := result.Body.Close(); err != nil {
			c.log.Warn("failed to close object body", zap.Stringer("path", p), zap.Error(err))
		}
	}()

	n, err := io.Copy(w, result.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read %s: %w", p, err)
	}

	c.log.Debug("fetched object", zap.Stringer("path", p), zap.Int64("bytes", n))
	return n, nil
}

// requestHeaders holds what headerMiddleware sets on every request.
type requestHeaders struct {
	headers map[string]string
	roles   []string
	subuser string
}

// headerMiddleware adds the user headers, roles, subuser and a request id to every request.
// It runs in the build step so the headers are covered by the request signature.
func headerMiddleware(rh requestHeaders) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Build.Add(middleware.BuildMiddlewareFunc("objtoolHeaders",
			func(ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler) (
				middleware.BuildOutput, middleware.Metadata, error,
			) {
				req, ok := in.Request.(*smithyhttp.Request)
				if !ok {
					return next.HandleBuild(ctx, in)
				}

				for name, value := range rh.headers {
					req.Header.Set(name, value)
				}
				if len(rh.roles) > 0 {
					req.Header.Set(RoleHeader, strings.Join(rh.roles, ","))
				}
				if rh.subuser != "" {
					req.Header.Set(SubuserHeader, rh.subuser)
				}
				req.Header.Set(RequestIDHeader, uuid.NewString())

				return next.HandleBuild(ctx, in)
			}), middleware.After)
	}
}

func insecureHTTPClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{} //nolint:gosec // set below on purpose
		}
		tr.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // --insecure
	})
}

// normalizeRegion returns the region, defaulting to DefaultRegion if empty.
func normalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	if region == "" {
		return DefaultRegion
	}
	return region
}
