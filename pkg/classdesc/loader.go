package classdesc

import (
	"io/fs"
	"net/http"
	"time"
)

// DefaultMaxBytes caps the size of a loaded document.
const DefaultMaxBytes = 16 << 20

// LoaderOptions configures a Loader. URL sources are rejected unless an HTTP
// client is supplied or HTTP is enabled with WithHTTP.
type LoaderOptions struct {
	Files    fs.FS
	Client   *http.Client
	HTTP     bool
	Timeout  time.Duration
	MaxBytes int64
}

type LoaderOption func(*LoaderOptions)

// WithFileSystem backs SourceKindFS sources with files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(o *LoaderOptions) { o.Files = files }
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(o *LoaderOptions) {
		o.Client = client
		o.HTTP = client != nil
	}
}

// WithHTTP enables URL sources through a default client. A zero timeout
// leaves requests bounded only by the context.
func WithHTTP(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.HTTP = true
		o.Timeout = timeout
	}
}

// WithMaxBytes overrides DefaultMaxBytes.
func WithMaxBytes(n int64) LoaderOption {
	return func(o *LoaderOptions) { o.MaxBytes = n }
}

func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	opts := LoaderOptions{MaxBytes: DefaultMaxBytes}
	for _, apply := range options {
		if apply != nil {
			apply(&opts)
		}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return opts
}
