package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Debug           bool   `yaml:"debug"`
	Timezone        string `yaml:"timezone"`
	CacheAgeSeconds int    `yaml:"cache_age_seconds"`

	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Status   StatusConfig   `yaml:"status"`
	Metrics  MetricsConfig  `yaml:"metrics"`

	CacheAge time.Duration  `yaml:"-"` // Derived from CacheAgeSeconds
	Location *time.Location `yaml:"-"` // Derived from Timezone
}

// ServerConfig holds the HTTP-facing configuration.
type ServerConfig struct {
	Host            string  `yaml:"host"`
	Port            int     `yaml:"port"`
	Secret          string  `yaml:"secret"`
	StaticDir       string  `yaml:"static_dir"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`

	Addr string `yaml:"-"` // Derived from Host and Port
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// StatusConfig holds the status catalog and the device view policy.
type StatusConfig struct {
	UsingFirst bool          `yaml:"using_first"`
	Sorted     bool          `yaml:"sorted"`
	NotUsing   string        `yaml:"not_using"`
	List       []StatusEntry `yaml:"list"`
}

// StatusEntry is one selectable status. Ids are assigned from list position
// at load time, so config files do not carry them.
type StatusEntry struct {
	ID    int    `yaml:"-" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Desc  string `yaml:"desc" json:"desc"`
	Color string `yaml:"color" json:"color"`
}

// MetricsConfig holds the visit counter configuration.
type MetricsConfig struct {
	Enabled   bool     `yaml:"enabled"`
	AllowList []string `yaml:"allow_list"`
}

// Load reads the configuration file at path, applies .env / environment
// overrides and fills defaults. A missing file is not an error; the
// defaults alone form a runnable configuration.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	f, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		log.Printf("[config] %s not found, using defaults", path)
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Shanghai"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.CacheAgeSeconds <= 0 {
		cfg.CacheAgeSeconds = 600
	}
	cfg.CacheAge = time.Duration(cfg.CacheAgeSeconds) * time.Second

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 9010
	}
	cfg.Server.Addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "./static"
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.Secret == "" {
		log.Printf("[config] server.secret is empty; anyone can call the write API")
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "data.db"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}

	if len(cfg.Status.List) == 0 {
		cfg.Status.List = []StatusEntry{
			{Name: "活着", Desc: "目前在线，可以找我玩。", Color: "awake"},
			{Name: "似了", Desc: "睡着了或不在线，有事请留言。", Color: "sleeping"},
		}
	}
	for i := range cfg.Status.List {
		cfg.Status.List[i].ID = i
	}

	if len(cfg.Metrics.AllowList) == 0 {
		cfg.Metrics.AllowList = []string{"/", "/api/query", "/api/status/list", "/api/metrics", "[static]"}
	}
	cfg.Metrics.AllowList = expandStatic(cfg.Metrics.AllowList, cfg.Server.StaticDir)

	return &cfg, nil
}

// applyEnv lets STATUS_* environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("STATUS_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("STATUS_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("STATUS_SECRET"); v != "" {
		cfg.Server.Secret = v
	}
	if v := os.Getenv("STATUS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		} else {
			log.Printf("[config] ignoring invalid STATUS_PORT=%q", v)
		}
	}
	if v := os.Getenv("STATUS_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("STATUS_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

// expandStatic replaces the "[static]" placeholder with one allow-list
// entry per file currently in the static dir.
func expandStatic(list []string, staticDir string) []string {
	out := make([]string, 0, len(list))
	expand := false
	for _, p := range list {
		if p == "[static]" {
			expand = true
			continue
		}
		out = append(out, p)
	}
	if !expand {
		return out
	}
	entries, err := os.ReadDir(staticDir)
	if err != nil {
		log.Printf("[config] cannot list %s: %v", staticDir, err)
		return out
	}
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, "/static/"+e.Name())
		}
	}
	return out
}
