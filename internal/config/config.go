// Package config loads CLI settings from defaults, an optional TOML file
// and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store"
)

// DefaultFile is read from the working directory when -config is not given.
const DefaultFile = "todo.toml"

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

// Config holds every tunable setting.
type Config struct {
	// Name is the storage base name: data lives in <Dir>/<Name>.json.
	Name     string `toml:"name"`
	Dir      string `toml:"dir"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	Group    bool   `toml:"group"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Name:     store.DefaultName,
		Dir:      ".",
		Theme:    "classic",
		LogLevel: logging.DefaultOptions().Level,
	}
}

// LoadFile decodes the TOML file at path over cfg. Keys that do not map
// to a setting are rejected.
func LoadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Load registers flags on fs, parses args and merges defaults, the config
// file and the flags that were set. Positional arguments are left in
// fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	var (
		configPath string
		name       string
		dir        string
		theme      string
		group      bool
		verbose    bool
	)
	fs.StringVar(&configPath, "config", "", "TOML config file (default ./"+DefaultFile+" if present)")
	fs.StringVar(&name, "file", cfg.Name, "storage base name, data lives in <dir>/<file>.json")
	fs.StringVar(&dir, "dir", cfg.Dir, "directory holding the storage file")
	fs.StringVar(&theme, "theme", cfg.Theme, "color theme: "+strings.Join(Themes, ", "))
	fs.BoolVar(&group, "group", false, "group output by pending/done")
	fs.BoolVar(&verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := LoadFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	} else if err := LoadFile(cfg, DefaultFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading config file %s: %w", DefaultFile, err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.Name = name
		case "dir":
			cfg.Dir = dir
		case "theme":
			cfg.Theme = theme
		case "group":
			cfg.Group = group
		case "v":
			if verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	cfg.Theme = strings.ToLower(cfg.Theme)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("name: must not be empty")
	}
	if c.Name != filepath.Base(c.Name) || c.Name == "." || c.Name == ".." {
		return fmt.Errorf("name %q: must be a base name, use dir for the location", c.Name)
	}
	if !knownTheme(c.Theme) {
		return fmt.Errorf("theme %q: must be one of %s", c.Theme, strings.Join(Themes, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func knownTheme(name string) bool {
	for _, t := range Themes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
