package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"qrattend/internal/adapters/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.SetupCommands(os.Stdout).ExecuteContext(ctx); err != nil {
		log.Printf("❌ %v", err)
		stop()
		os.Exit(1)
	}
}
