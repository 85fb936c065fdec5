package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pinmagik/pinmagik/internal/cli"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if ctx.Err() != nil {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	observability.SetProjectHooks(cli.NewLogHooks(c.Logger))
	return c.RootCommand().ExecuteContext(ctx)
}
