package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/deptool/internal/cli"
	"github.com/arthur-debert/deptool/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrNotSatisfied) {
			fmt.Fprintln(os.Stderr, style.RenderError(err))
		}
		stop()
		os.Exit(1)
	}
}
