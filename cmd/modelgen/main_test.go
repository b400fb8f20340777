package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

var shopPath = filepath.Join("..", "..", "pkg", "adapters", "yamldesc", "testdata", "shop.yaml")

type stubPrompter struct {
	names  []string
	offers []string
}

func (p *stubPrompter) SelectModels(_ context.Context, names []string) ([]string, error) {
	p.offers = names
	return p.names, nil
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func quietApp() *app {
	return &app{prompter: &stubPrompter{}}
}

func golden(t *testing.T, name string) string {
	return testsupport.MustReadGoldenString(t, testsupport.GoldenPath(name))
}

func TestGenerate_WritesEveryModel(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, quietApp(), "generate", "--source", shopPath, "--output", dir)
	require.NoError(t, err)

	for _, name := range []string{"Shop.Customer.js", "Shop.Line.js", "Shop.Order.js"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	order, err := os.ReadFile(filepath.Join(dir, "Shop.Order.js"))
	require.NoError(t, err)
	assert.Equal(t, golden(t, "order.extjs4.golden.js"), string(order))
}

func TestGenerate_StdoutWithDialect(t *testing.T) {
	out, err := execute(t, quietApp(), "generate", "Shop.Order", "-s", shopPath, "-d", "touch")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "order.touch2.golden.js")+"\n", out)
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "modelgen.yaml")
	abs, err := filepath.Abs(shopPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, []byte("source: "+abs+"\ndialect: touch2\nmodels:\n  - Shop.Order\n"), 0o600))

	out, err := execute(t, quietApp(), "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, golden(t, "order.touch2.golden.js")+"\n", out)

	out, err = execute(t, quietApp(), "generate", "--config", cfgPath, "--dialect", "extjs4")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "order.extjs4.golden.js")+"\n", out)
}

func TestGenerate_InteractiveSelection(t *testing.T) {
	dir := t.TempDir()
	prompts := &stubPrompter{names: []string{"shop.Line"}}
	a := &app{interactive: true, prompter: prompts}

	_, err := execute(t, a, "generate", "-s", shopPath, "-o", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"shop.Customer", "shop.Line", "shop.Order"}, prompts.offers)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Shop.Line.js", entries[0].Name())
}

func TestGenerate_Errors(t *testing.T) {
	_, err := execute(t, quietApp(), "generate", "Shop.Missing", "-s", shopPath)
	assert.ErrorContains(t, err, "unknown model")

	_, err = execute(t, quietApp(), "generate", "-s", shopPath, "-d", "extjs3")
	assert.Error(t, err)

	_, err = execute(t, quietApp(), "generate")
	assert.ErrorContains(t, err, "source is required")

	_, err = execute(t, quietApp(), "generate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Serve.Addr)

	path := filepath.Join(dir, "modelgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: models.yaml\nminify: true\nserve:\n  addr: :9000\ncache:\n  redisAddr: localhost:6379\n  ttl: 2h\n"), 0o600))
	cfg, err = loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "models.yaml", cfg.Source)
	assert.True(t, cfg.Minify)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, "/models", cfg.Serve.Prefix)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)

	require.NoError(t, os.WriteFile(path, []byte("sauce: models.yaml\n"), 0o600))
	_, err = loadConfig(path, true)
	assert.Error(t, err)
}

func TestWatchLoop_DebouncesChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "models.yaml")
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var reloads atomic.Int32
	reloaded := make(chan struct{}, 4)

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, quietLogger(), path, events, errs, func(context.Context) error {
			reloads.Add(1)
			reloaded <- struct{}{}
			return nil
		})
	}()

	events <- fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.yaml"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload not triggered")
	}
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), reloads.Load())
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
