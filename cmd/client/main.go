// Package main runs the Tranum local console against the configured
// storage backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atinyakov/tranum/internal/app"
	"github.com/atinyakov/tranum/internal/client/shell"
	"github.com/atinyakov/tranum/internal/config"
	"github.com/atinyakov/tranum/internal/logger"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "-version" {
		fmt.Printf("Tranum Console\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	// The console stays quiet unless asked otherwise.
	if options.LogLevel == "info" {
		options.LogLevel = "warn"
	}
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	a, err := app.Open(ctx, options, log.Log)
	if err != nil {
		log.Log.Fatal("cannot open store", zap.Error(err))
	}
	defer a.Close()

	fmt.Println("Type 'help' for a list of commands.")
	shell.New(a.Auth, a.Traveler, a.Admin, os.Stdin, os.Stdout).Run(ctx)
}
