// Package commands provides the command-line interface for the arxbench tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - benchmarking
//   - an interactive console
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
