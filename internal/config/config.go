// Package config loads dotkit settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/dotkit/config.toml (falling back to
// ~/.config/dotkit/config.toml) and has three tables:
//
//	[render]
//	backend = "auto"
//	engine = "dot"
//	format = "svg"
//	dpi = 96.0
//
//	[cache]
//	backend = "file"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
//
// Every key is optional. Command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dotkit/pkg/cache"
	"github.com/matzehuels/dotkit/pkg/engine"
	"github.com/matzehuels/dotkit/pkg/errors"
)

const appName = "dotkit"

// Config is the decoded configuration file.
type Config struct {
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Render holds default render options.
type Render struct {
	Backend    string  `toml:"backend"`
	Engine     string  `toml:"engine"`
	Format     string  `toml:"format"`
	DPI        float64 `toml:"dpi"`
	Scale      float64 `toml:"scale"`
	FontAdjust float64 `toml:"font_adjust"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	BaseDir    string  `toml:"basedir"`
}

// Cache selects and configures the render cache.
type Cache struct {
	Backend    string        `toml:"backend"`
	Dir        string        `toml:"dir"`
	URL        string        `toml:"url"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	TTL        time.Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr    string        `toml:"addr"`
	Timeout time.Duration `toml:"timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Render: Render{
			Backend: engine.BackendAuto,
			Engine:  string(engine.LayoutDot),
			Format:  string(engine.FormatSVG),
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.TTLRender,
		},
		Server: Server{
			Addr:    ":8080",
			Timeout: 30 * time.Second,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := baseDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the default directory of the file and badger caches.
func CacheDir() (string, error) {
	return baseDir("XDG_CACHE_HOME", ".cache")
}

func baseDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// Load reads the file at path on top of [Default]. An empty path means the
// default location, where a missing file is not an error. Unknown keys are
// rejected so that typos do not go unnoticed.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config")
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of [Default].
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := c.RenderOptions(); err != nil {
		return err
	}
	switch strings.ToLower(c.Render.Backend) {
	case "", engine.BackendAuto, engine.BackendGraphviz, engine.BackendCommand:
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "render.backend: unknown backend %q", c.Render.Backend)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendBadger, cache.BackendRedis, cache.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "cache.ttl must not be negative")
	}
	return nil
}

// RenderOptions converts the [render] table into engine options. Zero
// values keep the engine defaults.
func (c *Config) RenderOptions() (engine.Options, error) {
	r := c.Render
	opts := engine.DefaultOptions()
	if r.Engine != "" {
		l, err := engine.ParseLayout(r.Engine)
		if err != nil {
			return opts, err
		}
		opts = opts.WithEngine(l)
	}
	if r.Format != "" {
		f, err := engine.ParseFormat(r.Format)
		if err != nil {
			return opts, err
		}
		opts = opts.WithFormat(f)
	}
	if r.DPI != 0 {
		opts = opts.WithDPI(r.DPI)
	}
	if r.Scale != 0 {
		opts = opts.WithScale(r.Scale)
	}
	if r.FontAdjust != 0 {
		opts = opts.WithFontAdjust(r.FontAdjust)
	}
	if r.Width != 0 || r.Height != 0 {
		opts = opts.WithSize(r.Width, r.Height)
	}
	if r.BaseDir != "" {
		opts = opts.WithBaseDir(r.BaseDir)
	}
	return opts, opts.Validate()
}

// CacheConfig converts the [cache] table for [cache.Open]. The file and
// badger backends default to [CacheDir].
func (c *Config) CacheConfig(logger *log.Logger) cache.Config {
	cc := cache.Config{
		Backend:    strings.ToLower(c.Cache.Backend),
		Dir:        c.Cache.Dir,
		URL:        c.Cache.URL,
		Database:   c.Cache.Database,
		Collection: c.Cache.Collection,
		Logger:     logger,
	}
	if cc.Dir == "" && (cc.Backend == cache.BackendFile || cc.Backend == cache.BackendBadger) {
		if dir, err := CacheDir(); err == nil {
			cc.Dir = filepath.Join(dir, cc.Backend)
		}
	}
	return cc
}

// String renders the configuration back to TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("# encode config: %v\n", err)
	}
	return b.String()
}
