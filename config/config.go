// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

// Package config resolves default archive paths, output directories,
// and dialect from an optional config file, using viper the way
// vorteil's vconvert package does: try a named config file, fall back
// to built-in defaults if it can't be found.
package config

import (
	"os"

	"github.com/spf13/viper"
)

const defaultConfigName = ".derethfs"

// Config holds the resolved defaults. OutDir and Dialect are used by
// commands whose --outdir or --dialect flag is left unset. Portal and
// Cell are loaded but no command reads them: every command takes its
// archive path as a positional argument.
type Config struct {
	Portal  string
	Cell    string
	OutDir  string
	Dialect string
}

// Load reads cfgFile (or, if empty, ~/.derethfs.yaml) and returns the
// resolved defaults. When cfgFile is empty, a missing (or unreadable)
// ~/.derethfs.yaml is not an error: the built-in defaults (OutDir=".",
// Dialect="auto") are used, the same way vconvert's initConfig falls
// through to loadDefaults. An explicitly named cfgFile that cannot be
// read is returned as an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("outdir", ".")
	v.SetDefault("dialect", "auto")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			if cfgFile != "" {
				return nil, err
			}
		}
	}

	return &Config{
		Portal:  v.GetString("portal"),
		Cell:    v.GetString("cell"),
		OutDir:  v.GetString("outdir"),
		Dialect: v.GetString("dialect"),
	}, nil
}
