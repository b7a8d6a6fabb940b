// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs copies reports and their figures to Google Cloud
// Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// A Location is a bucket and an object name prefix, parsed from a URL
// of the form gs://bucket/prefix.
type Location struct {
	Bucket string
	Prefix string // without leading or trailing slashes; may be ""
}

// ParseURL parses a gs:// URL.
func ParseURL(s string) (Location, error) {
	rest, ok := strings.CutPrefix(s, "gs://")
	if !ok {
		return Location{}, fmt.Errorf("%q is not a gs:// URL", s)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%q has no bucket", s)
	}
	return Location{bucket, strings.Trim(prefix, "/")}, nil
}

// Object returns the object name for name, which is a slash-separated
// path relative to the prefix.
func (l Location) Object(name string) string {
	if l.Prefix == "" {
		return name
	}
	return path.Join(l.Prefix, name)
}

func (l Location) String() string {
	if l.Prefix == "" {
		return "gs://" + l.Bucket
	}
	return "gs://" + l.Bucket + "/" + l.Prefix
}

// ClientOptions returns the options for authenticating to Cloud
// Storage. A non-empty token is used as a static OAuth2 access token.
// Otherwise a non-empty credentialsFile is used. With neither, the
// client falls back to Application Default Credentials.
func ClientOptions(credentialsFile, token string) []option.ClientOption {
	switch {
	case token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		return []option.ClientOption{option.WithTokenSource(ts)}
	case credentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
	}
	return nil
}

// An Uploader writes files under a Location.
type Uploader struct {
	client *storage.Client
	loc    Location
}

// NewUploader connects to Cloud Storage.
func NewUploader(ctx context.Context, loc Location, opts ...option.ClientOption) (*Uploader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client, loc: loc}, nil
}

// Upload copies the local file at src to the object for name and
// returns its gs:// URL.
func (u *Uploader) Upload(ctx context.Context, src, name string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	obj := u.loc.Object(name)
	w := u.client.Bucket(u.loc.Bucket).Object(obj).NewWriter(ctx)
	w.ContentType = ContentType(src)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", src, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", src, err)
	}
	return "gs://" + u.loc.Bucket + "/" + obj, nil
}

// Close closes the client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

var contentTypes = map[string]string{
	".md":  "text/markdown; charset=utf-8",
	".png": "image/png",
	".txt": "text/plain; charset=utf-8",
}

// ContentType returns the MIME type to store the file name with.
func ContentType(name string) string {
	if t, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}
