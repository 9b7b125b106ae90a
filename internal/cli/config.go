package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (TYPEDSQL_FORMAT, ...).
const EnvPrefix = "TYPEDSQL"

// configFlags maps config keys to the flags that override them.
var configFlags = map[string]string{
	"format":     "format",
	"verbose":    "verbose",
	"log_format": "log-format",
	"schema":     "schema",
	"workers":    "workers",
}

// loadConfig resolves RootOptions from flags, environment and config file.
//
// Precedence, highest first:
//  1. Flags set on the command line
//  2. TYPEDSQL_* environment variables
//  3. The config file (--config, or .typedsql.yaml in the working directory)
//  4. Flag defaults
func loadConfig(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, flag := range configFlags {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(".typedsql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// The default config file is optional; an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	opts.Format = v.GetString("format")
	opts.Verbose = v.GetBool("verbose")
	opts.LogFormat = v.GetString("log_format")
	opts.Schema = v.GetString("schema")
	opts.Workers = v.GetInt("workers")
	return nil
}

// newLogger builds the process logger. Verbose enables debug records.
func newLogger(w io.Writer, opts *RootOptions) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
