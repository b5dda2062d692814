package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TusharG27x/codebuddy/internal/buildinfo"
	"github.com/TusharG27x/codebuddy/internal/client/cli"
	"github.com/TusharG27x/codebuddy/internal/client/config"
)

const interruptedExitCode = 130

// flushTimeout bounds the draft write made after an interrupt.
const flushTimeout = 2 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "codebuddy: %v\n", err)
		return 1
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run(ctx)
	}()

	select {
	case <-done:
		return 0
	case <-ctx.Done():
		// Run stays blocked on stdin, so save the draft from here.
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		app.Interrupt(flushCtx)
		return interruptedExitCode
	}
}
