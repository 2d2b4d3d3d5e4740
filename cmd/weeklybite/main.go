// Package main provides the weeklybite command-line interface.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weeklybite/weeklybite/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	a := &app{now: now}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	// Hooks after RunE are skipped on failure, so the container is closed here.
	a.shutdown()

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if details := validationDetails(err); details != "" {
			fmt.Fprint(stderr, details)
		}
		return errors.CodeOf(err).ExitCode()
	}
	return 0
}
