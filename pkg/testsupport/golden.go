// Package testsupport holds the reference classes and golden-file helpers
// shared by the builder, renderer and orchestrator tests. Set UPDATE_GOLDENS=1
// to rewrite golden files from the current output.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

const updateEnv = "UPDATE_GOLDENS"

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// GoldenPath resolves name inside this package's testdata directory so every
// package compares against the same reference output.
func GoldenPath(name string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("testdata", name)
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden %s: %v", filepath.Base(path), err)
	}
	return data
}

func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden rewrites path with data when UPDATE_GOLDENS is set and
// reports whether it did, in which case the caller should stop comparing.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(updateEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("golden %s: %v", filepath.Base(path), err)
	}
	return true
}

// CompareGolden returns a -want +got diff, empty when equal.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// LoadDocument reads a fixture file into a Document.
func LoadDocument(t *testing.T, path string) classdesc.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	doc, err := classdesc.NewDocument(classdesc.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	return doc
}
