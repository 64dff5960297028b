package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/resqsync/internal/client/cli"
	"github.com/dmitrijs2005/resqsync/internal/client/config"
	"github.com/dmitrijs2005/resqsync/internal/flagx"
	"github.com/dmitrijs2005/resqsync/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		return 2
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Printf("logging: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer app.Close()

	root := cli.NewRootCommand(app)
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.GlobalFlags()))
	if err := root.ExecuteContext(ctx); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
