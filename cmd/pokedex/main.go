// Package main is the entry point for the pokedex CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/pokedex/internal/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
