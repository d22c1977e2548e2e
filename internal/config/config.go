// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the filescript configuration file.
//
// The format is chosen by extension: .yaml or .yml, .toml, or .hcl.
// Every setting is optional; missing settings keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/interpreter"
	"github.com/matt-FFFFFF/filescript/internal/repl"
	"github.com/spf13/afero"
)

// FileBaseName is the name, without extension, of the configuration file looked up by Discover.
const FileBaseName = ".filescript"

// historyFileName is the history file in the home directory used when none is configured.
const historyFileName = ".filescript_history"

// Extensions lists the supported extensions in discovery order.
var Extensions = []string{".yaml", ".yml", ".toml", ".hcl"}

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read config")
	// ErrDecodeConfig is returned when the configuration file is malformed.
	ErrDecodeConfig = errors.New("failed to decode config")
	// ErrUnsupportedFormat is returned for a configuration file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidConfig is returned when a setting has an unusable value.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings of a filescript run.
type Config struct {
	CommentPrefix string `yaml:"comment_prefix" toml:"comment_prefix" hcl:"comment_prefix,optional"`
	Reopen        string `yaml:"reopen"         toml:"reopen"         hcl:"reopen,optional"`
	CopyOverwrite bool   `yaml:"copy_overwrite" toml:"copy_overwrite" hcl:"copy_overwrite,optional"`
	FailFast      bool   `yaml:"fail_fast"      toml:"fail_fast"      hcl:"fail_fast,optional"`
	Prompt        string `yaml:"prompt"         toml:"prompt"         hcl:"prompt,optional"`
	HistoryFile   string `yaml:"history_file"   toml:"history_file"   hcl:"history_file,optional"`
	WorkingDir    string `yaml:"working_dir"    toml:"working_dir"    hcl:"working_dir,optional"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		CommentPrefix: dsl.DefaultCommentPrefix,
		Reopen:        interpreter.ReopenError.String(),
		Prompt:        repl.DefaultPrompt,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	c := Default()
	if err := decode(path, data, c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func decode(path string, data []byte, c *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, c, yaml.DisallowUnknownField()); err != nil {
			return errors.Join(ErrDecodeConfig, err)
		}
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c)
		if err != nil {
			return errors.Join(ErrDecodeConfig, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: unknown setting %q", ErrDecodeConfig, undecoded[0].String())
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(path), data, nil, c); err != nil {
			return errors.Join(ErrDecodeConfig, err)
		}
	default:
		return fmt.Errorf("%w: %q, want one of %s", ErrUnsupportedFormat, path, strings.Join(Extensions, ", "))
	}

	return nil
}

// Discover returns the path of the first configuration file found in dir.
func Discover(dir string) (string, bool) {
	fs := FsFactory()

	for _, ext := range Extensions {
		p := filepath.Join(dir, FileBaseName+ext)
		if ok, _ := afero.Exists(fs, p); ok {
			return p, true
		}
	}

	return "", false
}

// Resolve loads the file at path, or the file discovered in dir when path is empty,
// or returns the defaults when there is neither. It also returns the file used, if any.
func Resolve(path, dir string) (*Config, string, error) {
	if path == "" {
		found, ok := Discover(dir)
		if !ok {
			return Default(), "", nil
		}

		path = found
	}

	c, err := Load(path)
	if err != nil {
		return nil, path, err
	}

	return c, path, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.CommentPrefix == "" || strings.ContainsAny(c.CommentPrefix, " \t\"';") {
		return fmt.Errorf("%w: comment_prefix %q must be non-empty and contain no spaces, quotes or ';'",
			ErrInvalidConfig, c.CommentPrefix)
	}

	if _, err := interpreter.ParseReopenPolicy(c.Reopen); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// InterpreterOptions converts the settings to interpreter options.
func (c *Config) InterpreterOptions() []interpreter.Option {
	policy, _ := interpreter.ParseReopenPolicy(c.Reopen)

	return []interpreter.Option{
		interpreter.WithCommentPrefix(c.CommentPrefix),
		interpreter.WithReopenPolicy(policy),
		interpreter.WithCopyOverwrite(c.CopyOverwrite),
	}
}

// HistoryPath is the configured history file, or a file in the home directory.
// It is empty when neither is available.
func (c *Config) HistoryPath() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, historyFileName)
}
