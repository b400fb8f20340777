// Package loader reads class descriptor documents from disk, from an fs.FS
// or over HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// Loader implements classdesc.Loader.
type Loader struct {
	opts   classdesc.LoaderOptions
	client *http.Client
}

var _ classdesc.Loader = (*Loader)(nil)

func New(opts classdesc.LoaderOptions) *Loader {
	l := &Loader{opts: opts}
	if opts.HTTP {
		client := http.Client{}
		if opts.Client != nil {
			client = *opts.Client
		}
		if client.Timeout == 0 {
			client.Timeout = opts.Timeout
		}
		l.client = &client
	}
	if l.opts.MaxBytes <= 0 {
		l.opts.MaxBytes = classdesc.DefaultMaxBytes
	}
	return l
}

func (l *Loader) Load(ctx context.Context, src classdesc.Source) (classdesc.Document, error) {
	if src == nil {
		return classdesc.Document{}, errors.New("loader: nil source")
	}
	if err := ctx.Err(); err != nil {
		return classdesc.Document{}, err
	}

	var (
		r   io.ReadCloser
		err error
	)
	switch src.Kind() {
	case classdesc.SourceKindFile:
		r, err = os.Open(src.Location())
	case classdesc.SourceKindFS:
		if l.opts.Files == nil {
			return classdesc.Document{}, fmt.Errorf("loader: %s: no filesystem configured", src.Location())
		}
		r, err = l.opts.Files.Open(src.Location())
	case classdesc.SourceKindURL:
		r, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return classdesc.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	defer r.Close()

	data, err := readLimited(r, l.opts.MaxBytes)
	if err != nil {
		return classdesc.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	return classdesc.NewDocument(src, data)
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if l.client == nil {
		return nil, errors.New("http sources are disabled")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %d bytes", limit)
	}
	return data, nil
}
