// Package config loads the configuration of the pf command from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variables, all prefixed with FOLIO_.
const (
	EnvEnv        = "FOLIO_ENV"
	EnvVerbose    = "FOLIO_VERBOSE"
	EnvScratchDir = "FOLIO_SCRATCH_DIR"
	EnvLazy       = "FOLIO_LAZY"
	EnvFile       = "FOLIO_FILE"
	EnvPlain      = "FOLIO_PLAIN"
)

// Config holds the command configuration (env + Viper).
type Config struct {
	Env        string // "production" selects the JSON log encoder.
	Verbose    bool   // emit debug logs.
	ScratchDir string // parent directory of the storage engine scratch files, OS default if empty.
	Lazy       bool   // read price histories and FX rates of SQLite files only when needed.
	File       string // default project file.
	Plain      bool   // print reports as raw markdown.
}

// Load loads config from env and an optional .env file in the working directory. The
// environment wins over the .env file. A missing .env file is not an error, an unreadable one is.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault(EnvEnv, "development")
	v.SetDefault(EnvLazy, true)
	v.SetDefault(EnvFile, "portfolio.json")

	return &Config{
		Env:        v.GetString(EnvEnv),
		Verbose:    v.GetBool(EnvVerbose),
		ScratchDir: v.GetString(EnvScratchDir),
		Lazy:       v.GetBool(EnvLazy),
		File:       v.GetString(EnvFile),
		Plain:      v.GetBool(EnvPlain),
	}, nil
}
