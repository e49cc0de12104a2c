// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Backend names accepted by the -backend flag.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// Backend selects where records are persisted: file, postgres or memory.
	Backend string `json:"backend"`

	// DataDir is the directory of the file backend.
	DataDir string `json:"data_dir"`

	// DatabaseDSN holds the database connection string for the postgres backend.
	DatabaseDSN string `json:"database_dsn"`

	// AdminSecretCode must be presented to register an admin account.
	AdminSecretCode string `json:"admin_secret_code"`

	// PasswordMode is "bcrypt" or "plain".
	PasswordMode string `json:"password_mode"`

	// LogLevel is a zap level name.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Parse reads options from args, then the JSON config file, then the
// environment (a .env file in the working directory is loaded first).
// Later sources win.
func Parse(args []string) (*Options, error) {
	_ = godotenv.Load()

	options := &Options{}
	fs := flag.NewFlagSet("tranum", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.Backend, "backend", BackendFile, "storage backend: file, postgres or memory")
	fs.StringVar(&options.DataDir, "data", "data", "data directory for the file backend")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.AdminSecretCode, "admin-code", "", "secret code required for admin registration")
	fs.StringVar(&options.PasswordMode, "password-mode", "bcrypt", "password storage: bcrypt or plain")
	fs.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	for env, dst := range map[string]*string{
		"SERVER_ADDRESS":    &options.Port,
		"STORAGE_BACKEND":   &options.Backend,
		"DATA_DIR":          &options.DataDir,
		"DATABASE_DSN":      &options.DatabaseDSN,
		"ADMIN_SECRET_CODE": &options.AdminSecretCode,
		"PASSWORD_MODE":     &options.PasswordMode,
		"LOG_LEVEL":         &options.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	switch options.Backend {
	case BackendFile, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q", options.Backend)
	}
	if options.Backend == BackendPostgres && options.DatabaseDSN == "" {
		return nil, fmt.Errorf("postgres backend needs a DSN (-d or DATABASE_DSN)")
	}

	return options, nil
}
