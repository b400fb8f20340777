// Command modelgen generates Ext JS 4 and Sencha Touch 2 model definitions
// from class descriptor documents.
//
// Usage:
//
//	modelgen generate [models...] [flags]
//	modelgen watch [models...] [flags]
//	modelgen serve [flags]
//
// Settings are read from modelgen.yaml in the working directory (or the file
// named by --config) and overridden by flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
