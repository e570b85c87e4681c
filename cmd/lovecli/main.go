package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cherishedwords/internal/client"
	"cherishedwords/internal/client/cli"
	"cherishedwords/internal/client/remote"
	"cherishedwords/internal/client/view"
	"cherishedwords/internal/config"
	"cherishedwords/internal/logging"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	configFile := pflag.StringP("config", "c", os.Getenv("LOVECLI_CONFIG"), "path to a config file (yaml, json, toml or env)")
	noColor := pflag.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable creator colours")
	pflag.Parse()

	cfg, err := config.LoadClient(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lovecli:", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		App:      "lovecli",
		Env:      "production",
		Level:    "info",
		File:     cfg.LogFile,
		FileOnly: true,
	})

	backend := remote.NewBackend(*cfg, nil)
	app := client.NewApp(backend, backend, logger)

	stdinFd := int(os.Stdin.Fd())
	interactive := term.IsTerminal(stdinFd)
	renderer, err := view.New(interactive && !*noColor)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lovecli:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shell := cli.NewShell(app, renderer, os.Stdin, os.Stdout)
	if interactive {
		shell.WithTerminal(stdinFd)
	}
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("shell stopped")
		fmt.Fprintln(os.Stderr, "lovecli:", err)
		os.Exit(1)
	}
}
