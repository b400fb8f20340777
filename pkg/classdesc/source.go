package classdesc

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// SourceKind tells a Loader how to fetch a document.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names the origin of a descriptor document.
type Source interface {
	Kind() SourceKind
	Location() string
}

type location struct {
	kind SourceKind
	loc  string
}

func (l location) Kind() SourceKind { return l.kind }
func (l location) Location() string { return l.loc }

// SourceFromFile points at a file on disk.
func SourceFromFile(p string) Source {
	return location{kind: SourceKindFile, loc: filepath.Clean(p)}
}

// SourceFromFS points at an entry of the loader's fs.FS.
func SourceFromFS(name string) Source {
	return location{kind: SourceKindFS, loc: path.Clean(name)}
}

// SourceFromURL points at an http or https URL. It panics on a malformed URL
// so configuration mistakes surface at startup.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("classdesc: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("classdesc: invalid URL %q: %v", raw, err))
	}
	return location{kind: SourceKindURL, loc: raw}
}

// ParseSource picks a URL source for http(s) locations and a file source for
// everything else.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("classdesc: empty source")
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("classdesc: invalid URL %q: %w", raw, err)
		}
		return location{kind: SourceKindURL, loc: raw}, nil
	}
	return SourceFromFile(raw), nil
}

// Document is a loaded descriptor payload together with its origin. The
// payload is copied in and out, so a Document is safe to share.
type Document struct {
	src Source
	raw []byte
}

// NewDocument requires a source and a non-empty payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("classdesc: document source is required")
	case len(raw) == 0:
		return Document{}, fmt.Errorf("classdesc: %s is empty", src.Location())
	}
	return Document{src: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.src }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

func (d Document) Location() string {
	if d.src == nil {
		return ""
	}
	return d.src.Location()
}
