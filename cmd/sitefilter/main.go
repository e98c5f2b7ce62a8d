package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tfkr-ae/sitefilter/cmd/sitefilter/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
