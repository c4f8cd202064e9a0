// Package loader implements source.Loader for files, fs.FS entries and HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-hydrate/pkg/source"
)

const defaultMaxBytes int64 = 16 << 20

// Loader delegates to file, fs.FS or HTTP strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options source.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  maxBytes,
	}
}

// Load fetches the document named by src.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, src.Location(), l.maxBytes)
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxBytes)
	case source.KindURL:
		if !l.allowHTTP {
			return source.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.maxBytes)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return source.Document{}, err
	}

	return source.NewDocument(src, data)
}
