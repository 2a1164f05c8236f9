package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/petfriends-qa/petfriends-api-tests/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "petfriends: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command. The logger is flushed on every path, including
// commands that end with a non-200 status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer func() { _ = logger.Close() }()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
