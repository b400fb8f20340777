package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	modelgen "github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/cache"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
)

const httpTimeout = 30 * time.Second

// app carries the state shared by every subcommand.
type app struct {
	configPath  string
	verbose     bool
	interactive bool

	flags    config
	cfg      config
	dialect  render.Dialect
	logger   *slog.Logger
	prompter prompter
}

func newApp() *app {
	return &app{
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
		prompter:    surveyPrompter{},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "modelgen",
		Short: "Generate client-side model definitions from class descriptors",
		Long: `modelgen turns class descriptor documents (modelgen YAML or OpenAPI 3)
into Ext JS 4 or Sencha Touch 2 Ext.define model definitions.

Settings come from modelgen.yaml and can be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", defaultConfigPath, "configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.interactive, "interactive", a.interactive, "prompt for models when none are selected")
	flags.StringVarP(&a.flags.Source, "source", "s", "", "descriptor document path or URL")
	flags.StringVar(&a.flags.Format, "format", "", "descriptor format (yaml, openapi); detected when empty")
	flags.StringVarP(&a.flags.Dialect, "dialect", "d", "", "output dialect (extjs4, touch2)")
	flags.BoolVar(&a.flags.Minify, "minify", false, "emit compact output")
	flags.StringVarP(&a.flags.Output, "output", "o", "", "output directory (stdout when empty)")
	flags.StringVar(&a.flags.Cache.RedisAddr, "redis-addr", "", "share rendered output through a Redis server")

	root.AddCommand(newGenerateCmd(a), newWatchCmd(a), newServeCmd(a))
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = a.flags.Source
	}
	if changed("format") {
		cfg.Format = a.flags.Format
	}
	if changed("dialect") {
		cfg.Dialect = a.flags.Dialect
	}
	if changed("minify") {
		cfg.Minify = a.flags.Minify
	}
	if changed("output") {
		cfg.Output = a.flags.Output
	}
	if changed("redis-addr") {
		cfg.Cache.RedisAddr = a.flags.Cache.RedisAddr
	}
	if changed("addr") {
		cfg.Serve.Addr = a.flags.Serve.Addr
	}
	if changed("prefix") {
		cfg.Serve.Prefix = a.flags.Serve.Prefix
	}
	if changed("watch") {
		cfg.Serve.Watch = a.flags.Serve.Watch
	}

	a.dialect = ""
	if cfg.Dialect != "" {
		dialect, err := render.ParseDialect(cfg.Dialect)
		if err != nil {
			return err
		}
		a.dialect = dialect
	}
	a.cfg = cfg
	return nil
}

// orchestrator builds the generator for one command run. The returned
// function releases the cache store.
func (a *app) orchestrator(ctx context.Context) (*orchestrator.Orchestrator, func(), error) {
	options := []cache.Option{cache.WithLogger(a.logger)}
	release := func() {}

	if addr := a.cfg.Cache.RedisAddr; addr != "" {
		store := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), a.cfg.Cache.Prefix, cache.WithTTL(a.cfg.Cache.TTL))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", addr, err)
		}
		a.logger.Debug("using redis store", "addr", addr, "namespace", store.Namespace(), "ttl", store.TTL())
		options = append(options, cache.WithStore(store))
		release = func() {
			if err := store.Clear(context.WithoutCancel(ctx)); err != nil {
				a.logger.Warn("clear redis store", "error", err)
			}
			if err := store.Close(); err != nil {
				a.logger.Warn("close redis store", "error", err)
			}
		}
	}

	gen := orchestrator.New(
		orchestrator.WithLogger(a.logger),
		orchestrator.WithCache(cache.New(options...)),
		orchestrator.WithDefaultDialect(render.DialectA),
		orchestrator.WithLoader(modelgen.NewLoader(classdesc.WithHTTP(httpTimeout))),
	)
	return gen, release, nil
}

func (a *app) source() (classdesc.Source, error) {
	if strings.TrimSpace(a.cfg.Source) == "" {
		return nil, errors.New("a descriptor source is required (--source or source: in modelgen.yaml)")
	}
	return classdesc.ParseSource(a.cfg.Source)
}

func (a *app) loadCatalog(ctx context.Context, gen *orchestrator.Orchestrator) (*classdesc.Catalog, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	catalog, err := gen.LoadCatalog(ctx, src, a.cfg.Format)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog loaded", "source", src.Location(), "classes", catalog.Len())
	return catalog, nil
}
