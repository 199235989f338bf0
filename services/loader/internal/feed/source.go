package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// multiCloser closes every wrapped closer, innermost reader first.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader for a local path or an http(s) URL. Sources ending in
// .gz or .zst are decompressed transparently.
func Open(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	var (
		body io.ReadCloser
		name = source
	)

	if IsURL(source) {
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parse source url: %w", err)
		}
		name = u.Path

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", source, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, source)
		}
		body = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		body = f
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(body)
		if err != nil {
			body.Close()
			return nil, fmt.Errorf("gzip %s: %w", source, err)
		}
		return multiCloser{Reader: zr, closers: []io.Closer{zr, body}}, nil
	case ".zst":
		zr, err := zstd.NewReader(body, zstd.WithDecoderConcurrency(0))
		if err != nil {
			body.Close()
			return nil, fmt.Errorf("zstd %s: %w", source, err)
		}
		rc := zr.IOReadCloser()
		return multiCloser{Reader: rc, closers: []io.Closer{rc, body}}, nil
	default:
		return body, nil
	}
}
