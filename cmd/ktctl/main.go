// Command ktctl prints knowledge transfer readiness views from a dataset file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/pkg/logger"
)

// Process exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitConfiguration = 2
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:]))
}

func execute(ctx context.Context, args []string) int {
	// Diagnostics go to stderr so -o json stays machine readable.
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		return exitFailure
	}
	_ = logger.SetLevelString("warn")

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, readiness.ErrConfiguration) {
			return exitConfiguration
		}
		return exitFailure
	}
	return exitOK
}
