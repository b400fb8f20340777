package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/httpmodel"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve model definitions over HTTP",
		Long: `Serve exposes GET <prefix>/{model}.js?dialect=&minify= for every class in the
descriptor document. With --watch the document is reloaded and the caches
cleared whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.flags.Serve.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&a.flags.Serve.Prefix, "prefix", "/models", "route prefix")
	cmd.Flags().BoolVar(&a.flags.Serve.Watch, "watch", false, "reload the descriptor document on change")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	gen, release, err := a.orchestrator(ctx)
	if err != nil {
		return err
	}
	defer release()

	catalog, err := a.loadCatalog(ctx, gen)
	if err != nil {
		return err
	}
	var current atomic.Pointer[classdesc.Catalog]
	current.Store(catalog)

	resolver := httpmodel.ResolverFunc(func(name string) (*classdesc.Class, bool) {
		return current.Load().Class(name)
	})
	srv := &http.Server{
		Addr: a.cfg.Serve.Addr,
		Handler: httpmodel.New(gen, resolver,
			httpmodel.WithLogger(a.logger),
			httpmodel.WithPrefix(a.cfg.Serve.Prefix),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if a.cfg.Serve.Watch {
		go func() {
			err := a.watchSource(ctx, func(ctx context.Context) error {
				next, err := a.loadCatalog(ctx, gen)
				if err != nil {
					return err
				}
				current.Store(next)
				return gen.ClearCaches(ctx)
			})
			if err != nil {
				a.logger.Error("watch", "error", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("serving models", "addr", srv.Addr, "prefix", a.cfg.Serve.Prefix, "models", catalog.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
