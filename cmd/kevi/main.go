package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := cli.NewDefaultKeviCommand(genericclioptions.NewDefaultIOStreams(), os.Args[1:])

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
