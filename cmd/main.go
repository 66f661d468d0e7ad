package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/orgball2608/insta-feed/internal/app"
	"github.com/orgball2608/insta-feed/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	var log logger.Logger
	app := fx.New(app.Module, fx.Populate(&log))

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		fatal(log, "Failed to start application", err)
	}

	// The UI owns the terminal and triggers shutdown when it quits.
	sig := <-app.Wait()

	// Gracefully shutdown the application
	if err := app.Stop(context.Background()); err != nil {
		fatal(log, "Failed to stop application", err)
	}
	os.Exit(sig.ExitCode)
}

// fatal reports err through the application logger, when the container got
// far enough to build one, and on stderr.
func fatal(log logger.Logger, msg string, err error) {
	report(log, os.Stderr, msg, err)
	os.Exit(1)
}

func report(log logger.Logger, w io.Writer, msg string, err error) {
	if log != nil {
		log.Error(msg, "error", err)
	}
	fmt.Fprintf(w, "%s: %v\n", msg, err)
}
