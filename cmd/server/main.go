// Package main starts the Tranum HTTP API: configuration, logging, the
// storage backend, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/atinyakov/tranum/internal/app"
	"github.com/atinyakov/tranum/internal/config"
	"github.com/atinyakov/tranum/internal/logger"
	"github.com/atinyakov/tranum/internal/server/handler/http"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	a, err := app.Open(context.Background(), options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot open store", zap.Error(err))
	}
	defer a.Close()

	authHandler := &http.AuthHandler{AuthService: a.Auth}
	travelerHandler := &http.TravelerHandler{Service: a.Traveler}
	adminHandler := &http.AdminHandler{Service: a.Admin}

	router := http.NewRouter(authHandler, travelerHandler, adminHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.String("backend", options.Backend),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
