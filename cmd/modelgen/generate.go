package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [models...]",
		Short: "Write model definitions for the selected classes",
		Long: `Generate loads the descriptor document and writes one model definition per
selected class. Models are selected by argument, by the models: list in
modelgen.yaml, interactively, or all classes when nothing is selected.

With --output each model is written to <dir>/<ModelName>.js; otherwise the
definitions are printed to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, release, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			return a.generateOnce(cmd.Context(), gen, cmd.OutOrStdout(), args)
		},
	}
}

// generateOnce loads the catalog and writes every selected model.
func (a *app) generateOnce(ctx context.Context, gen *orchestrator.Orchestrator, stdout io.Writer, args []string) error {
	catalog, err := a.loadCatalog(ctx, gen)
	if err != nil {
		return err
	}
	classes, err := a.selectClasses(ctx, catalog, args)
	if err != nil {
		return err
	}
	return a.writeModels(ctx, gen, stdout, classes)
}

func (a *app) selectClasses(ctx context.Context, catalog *classdesc.Catalog, args []string) ([]*classdesc.Class, error) {
	names := args
	if len(names) == 0 {
		names = a.cfg.Models
	}
	if len(names) == 0 && a.interactive && catalog.Len() > 1 {
		picked, err := a.prompter.SelectModels(ctx, catalog.Names())
		if err != nil {
			return nil, err
		}
		names = picked
	}
	if len(names) == 0 {
		return catalog.Classes(), nil
	}

	classes := make([]*classdesc.Class, 0, len(names))
	for _, name := range names {
		class, ok := catalog.Class(name)
		if !ok {
			return nil, fmt.Errorf("unknown model %q", name)
		}
		classes = append(classes, class)
	}
	return classes, nil
}

func (a *app) writeModels(ctx context.Context, gen *orchestrator.Orchestrator, stdout io.Writer, classes []*classdesc.Class) error {
	if a.cfg.Output != "" {
		if err := os.MkdirAll(a.cfg.Output, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	for _, class := range classes {
		req := orchestrator.Request{Class: class, Dialect: a.dialect, Minify: a.cfg.Minify}
		if a.cfg.Output == "" {
			if err := gen.WriteSource(ctx, stdout, req); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(stdout); err != nil {
				return err
			}
			continue
		}

		path := filepath.Join(a.cfg.Output, class.ModelName()+".js")
		if err := writeModelFile(ctx, gen, path, req); err != nil {
			return err
		}
		a.logger.Info("model written", "model", class.ModelName(), "path", path)
	}
	return nil
}

func writeModelFile(ctx context.Context, gen *orchestrator.Orchestrator, path string, req orchestrator.Request) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gen.WriteSource(ctx, f, req); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
