// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

// Duration accepts "10s" / "5m" style YAML values as well as bare integers,
// which are taken as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type BotConfig struct {
	Token    string `yaml:"token"`
	Mode     string `yaml:"mode"` // polling | webhook (future)
	Username string `yaml:"username"` // overrides the API-reported name for "@bot" mention matching
	Workers  int    `yaml:"workers"` // concurrent update workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"` // ops server: /healthz /readyz /metrics
}

type RedisConfig struct {
	Enabled  bool     `yaml:"enabled"`
	URL      string   `yaml:"url"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"` // lookup cache TTL
}

type UpstreamConfig struct {
	CratesBaseURL string   `yaml:"crates_base_url"`
	DocsBaseURL   string   `yaml:"docs_base_url"`
	Timeout       Duration `yaml:"timeout"`
	UserAgent     string   `yaml:"user_agent"`
}

type RateLimitConfig struct {
	PerChat int      `yaml:"per_chat"` // commands per window, 0 disables
	Window  Duration `yaml:"window"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Redis     RedisConfig     `yaml:"redis"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads and validates a YAML config file. The bot token may also
// come from BOT_TOKEN, which wins over the file so tokens can stay out of
// version control.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev

	if env := os.Getenv("BOT_TOKEN"); env != "" {
		cfg.Bot.Token = env
	}
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token missing: set bot.token or BOT_TOKEN")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8081
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = Duration(10 * time.Second)
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "telegram-crates-bot (+https://t.me)"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = Duration(10 * time.Minute)
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = Duration(time.Minute)
	}
}
