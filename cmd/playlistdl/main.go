package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/playlist-downloader/internal/cli"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.New(version).Execute(ctx)
	stop()
	if err != nil {
		cli.ErrorColor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
