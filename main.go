package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"actionsperf.ai/cli/internal/interfaces/cli"
	"actionsperf.ai/cli/internal/interfaces/di"
)

var version = "dev"

func main() {
	container := di.NewContainer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		// Resolution has no side effects, so shutdown is just
		// abandoning the in-flight pass.
		cancel()
	}()

	os.Exit(cli.Execute(ctx, container, version))
}
