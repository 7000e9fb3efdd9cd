package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StudyHub/internal/cli/commands"
	"StudyHub/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

// run отделён от main, чтобы отложенный cancel отработал до os.Exit.
func run() int {
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(cfg)
		return commands.ExitOK
	}

	// Ctrl-C отменяет текущую команду; для записи прохода есть q
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return commands.Dispatch(ctx, cfg, flag.Args())
}

func printVersion(cfg *config.Config) {
	fmt.Printf("shcli %s (built %s)\nServer: %s\nRepeat incorrect cards: %t\n",
		version, buildDate, cfg.ServerURL, cfg.RepeatIncorrect)
}
