package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

const payload = "classes:\n  - name: App.User\n"

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := New(classdesc.NewLoaderOptions()).Load(context.Background(), classdesc.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}
	if doc.Location() != filepath.Clean(path) {
		t.Fatalf("location = %q", doc.Location())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"models/app.yaml": &fstest.MapFile{Data: []byte(payload)}}
	l := New(classdesc.NewLoaderOptions(classdesc.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), classdesc.SourceFromFS("models/app.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}

	if _, err := New(classdesc.NewLoaderOptions()).Load(context.Background(), classdesc.SourceFromFS("models/app.yaml")); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	src := classdesc.SourceFromURL(server.URL + "/models.yaml")
	if _, err := New(classdesc.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(classdesc.NewLoaderOptions(classdesc.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), classdesc.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(classdesc.NewLoaderOptions()).Load(ctx, classdesc.SourceFromFile("whatever.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoader_SizeLimit(t *testing.T) {
	files := fstest.MapFS{"big.yaml": &fstest.MapFile{Data: []byte(payload)}}
	l := New(classdesc.NewLoaderOptions(classdesc.WithFileSystem(files), classdesc.WithMaxBytes(8)))
	if _, err := l.Load(context.Background(), classdesc.SourceFromFS("big.yaml")); err == nil {
		t.Fatalf("expected size error")
	}
}
