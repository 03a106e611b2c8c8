package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the viewer reads from its environment.
// Command overrides run through `sh -c` and receive their input on
// stdin, so any pipeline works as a value.
type Config struct {
	// URLFile is the newline-delimited list of read links. Optional;
	// without it read state falls back to a recency window.
	URLFile string `mapstructure:"url_file"`

	Plumber    string `mapstructure:"plumber"`     // link/enclosure opener
	Piper      string `mapstructure:"piper"`       // item pager
	Yanker     string `mapstructure:"yanker"`      // clipboard command
	MarkRead   string `mapstructure:"mark_read"`   // mark-read script
	MarkUnread string `mapstructure:"mark_unread"` // mark-unread script

	Mouse    bool   `mapstructure:"mouse"`     // xterm mouse tracking
	OnlyNew  bool   `mapstructure:"only_new"`  // sidebar shows only feeds with new items
	LazyLoad bool   `mapstructure:"lazy_load"` // defer item fields to first access
	Debug    string `mapstructure:"debug"`     // debuglog level, empty = off
}

func defaultConfig() *Config {
	return &Config{
		MarkRead:   "sfeed_markread read",
		MarkUnread: "sfeed_markread unread",
		Mouse:      true,
	}
}

// Load resolves configuration from an optional TOML file and the
// SFEED_* environment variables the sfeed ecosystem documents
// (SFEED_URL_FILE, SFEED_PLUMBER, SFEED_PIPER, SFEED_YANKER,
// SFEED_MARK_READ, SFEED_MARK_UNREAD).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault("url_file", def.URLFile)
	v.SetDefault("plumber", def.Plumber)
	v.SetDefault("piper", def.Piper)
	v.SetDefault("yanker", def.Yanker)
	v.SetDefault("mark_read", def.MarkRead)
	v.SetDefault("mark_unread", def.MarkUnread)
	v.SetDefault("mouse", def.Mouse)
	v.SetDefault("only_new", def.OnlyNew)
	v.SetDefault("lazy_load", def.LazyLoad)
	v.SetDefault("debug", def.Debug)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(homeDir, ".config", "sfview"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.URLFile = expandPath(cfg.URLFile)
	return &cfg, nil
}

// expandPath expands a leading ~ and makes the path absolute.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}
