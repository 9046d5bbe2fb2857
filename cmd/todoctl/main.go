package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/tasknest/tasknest-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cli.NewApp()).ExecuteContext(ctx); err != nil {
		// Cobra prints the error, so we just need to exit.
		stop()
		os.Exit(1)
	}
}
