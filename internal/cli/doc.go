// Package cli provides command-line interface setup and configuration
// for the bopomofo application. It handles flag parsing, command
// creation, configuration management using cobra, viper and .env files,
// and builds the zap logger used for diagnostics.
package cli
