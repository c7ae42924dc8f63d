// Package config loads the optional sprout.yaml run configuration.
package config

import (
    "io"
    "os"
    "path/filepath"
    "strings"

    "github.com/pkg/errors"
    "gopkg.in/yaml.v3"

    "github.com/derphilovic/sprout/internal/console"
)

const (
    FileName  = "sprout.yaml"
    EnvConfig = "SPROUT_CONFIG"
    EnvTrace  = "SPROUT_TRACE"
)

type Config struct {
    // Scripts are tried in order when no script is named on the command line.
    Scripts []string
    // SearchDepth is how many parent directories are searched for a script.
    SearchDepth int
    Input       console.Mode
    // History is the line editor's history file; empty disables history.
    History string
    Trace   bool
}

func Default() Config {
    return Config{Scripts: []string{"test.spt"}, SearchDepth: 10, Input: console.ModeAuto}
}

// fileConfig is the on-disk shape; nil fields keep their defaults.
type fileConfig struct {
    Scripts     []string `yaml:"scripts"`
    SearchDepth *int     `yaml:"search_depth"`
    Input       *string  `yaml:"input"`
    History     *string  `yaml:"history"`
    Trace       *bool    `yaml:"trace"`
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
    f, err := os.Open(path)
    if err != nil {
        return Config{}, errors.Wrap(err, "config")
    }
    defer f.Close()

    var raw fileConfig
    dec := yaml.NewDecoder(f)
    dec.KnownFields(true)
    if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
        return Config{}, errors.Wrapf(err, "config: parse %s", path)
    }
    cfg, err := raw.apply(Default())
    if err != nil {
        return Config{}, errors.Wrapf(err, "config: %s", path)
    }
    return cfg, nil
}

func (raw fileConfig) apply(cfg Config) (Config, error) {
    if raw.Scripts != nil { cfg.Scripts = raw.Scripts }
    if raw.SearchDepth != nil {
        if *raw.SearchDepth < 0 { return cfg, errors.Errorf("search_depth must not be negative, got %d", *raw.SearchDepth) }
        cfg.SearchDepth = *raw.SearchDepth
    }
    if raw.Input != nil {
        mode, err := console.ParseMode(*raw.Input)
        if err != nil { return cfg, err }
        cfg.Input = mode
    }
    if raw.History != nil { cfg.History = expandHome(*raw.History) }
    if raw.Trace != nil { cfg.Trace = *raw.Trace }
    return cfg, nil
}

// Discover loads the file named by SPROUT_CONFIG, else sprout.yaml in dir,
// else the defaults. SPROUT_TRACE=1 turns tracing on. It returns the path
// that was loaded, or "" for defaults.
func Discover(getenv func(string) string, dir string) (Config, string, error) {
    cfg := Default()
    path := getenv(EnvConfig)
    if path == "" {
        candidate := filepath.Join(dir, FileName)
        if _, err := os.Stat(candidate); err == nil { path = candidate }
    }
    if path != "" {
        loaded, err := Load(path)
        if err != nil { return cfg, path, err }
        cfg = loaded
    }
    switch strings.ToLower(getenv(EnvTrace)) {
    case "1", "true", "yes":
        cfg.Trace = true
    }
    return cfg, path, nil
}

func expandHome(p string) string {
    if p != "~" && !strings.HasPrefix(p, "~/") { return p }
    home, err := os.UserHomeDir()
    if err != nil { return p }
    return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
