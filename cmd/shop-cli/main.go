// Command shop-cli runs the interactive storefront menu against an in-memory
// engine seeded with the embedded catalog.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/xenking/storefront/internal/cli"
	"github.com/xenking/storefront/internal/store"
	"github.com/xenking/storefront/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seeds, err := seed.Products()
	if err != nil {
		slog.Error("load seed", "err", err)
		os.Exit(1)
	}
	st, err := store.New(seeds)
	if err != nil {
		slog.Error("create store", "err", err)
		os.Exit(1)
	}

	menu := cli.New(st, os.Stdin, os.Stdout)
	if err := menu.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("menu", "err", err)
		os.Exit(1)
	}
}
