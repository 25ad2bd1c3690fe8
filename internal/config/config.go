package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Pixabay  PixabayConfig `mapstructure:"pixabay"`
	Source   SourceConfig  `mapstructure:"source"`
	Cache    CacheConfig   `mapstructure:"cache"`
	Database string        `mapstructure:"database"`
	Server   ServerConfig  `mapstructure:"server"`
	Debug    DebugConfig   `mapstructure:"debug"`
	Log      LogConfig     `mapstructure:"log"`
}

type PixabayConfig struct {
	Key               string `mapstructure:"key"`
	DefaultSearchTerm string `mapstructure:"default_search_term"`
	Icon              string `mapstructure:"icon"`
	CountAll          int    `mapstructure:"count_all"`
	BaseURL           string `mapstructure:"base_url"`
}

type SourceConfig struct {
	Identifier string `mapstructure:"identifier"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver"` // memory, sqlite
	TTL    time.Duration `mapstructure:"ttl"`
	Size   int           `mapstructure:"size"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	Auth       bool   `mapstructure:"auth"`
	StaticDir  string `mapstructure:"static_dir"`
	PublicBase string `mapstructure:"public_base"`
}

type DebugConfig struct {
	PrettyJSON bool `mapstructure:"pretty_json"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

const (
	CacheDriverMemory = "memory"
	CacheDriverSQLite = "sqlite"
)

// Load reads configPath, or conf/config.{json,yaml,...} when empty.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./conf")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("pixabay.key", "")
	v.SetDefault("pixabay.default_search_term", "")
	v.SetDefault("pixabay.icon", "resource://Moddengine.Pixabay/Public/Icons/pixabay.svg")
	v.SetDefault("pixabay.count_all", 40000)
	v.SetDefault("pixabay.base_url", "https://pixabay.com/api/")
	v.SetDefault("source.identifier", "pixabay")
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.size", 4096)
	v.SetDefault("database", "data/cache.db")
	v.SetDefault("server.addr", ":8081")
	v.SetDefault("server.auth", false)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.public_base", "/static")
	v.SetDefault("debug.pretty_json", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("pixabay.key", "PIXABAY_API_KEY")
	v.BindEnv("pixabay.default_search_term", "PIXABAY_DEFAULT_SEARCH_TERM")
	v.BindEnv("database", "PIXABAY_DATABASE")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Cache.Driver {
	case CacheDriverMemory, CacheDriverSQLite:
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	return &cfg, nil
}

// SourceOptions renders the asset source settings in the generic option
// form the CMS passes to asset source factories.
func (c *Config) SourceOptions() map[string]any {
	return map[string]any{
		"apiKey":            c.Pixabay.Key,
		"defaultSearchTerm": c.Pixabay.DefaultSearchTerm,
		"icon":              c.Pixabay.Icon,
		"countAll":          c.Pixabay.CountAll,
	}
}
