package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults applied by Validate when a field is left empty.
const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultTimeout        = "15s"
	DefaultAdminPrefix    = "/api/admin"
	DefaultTrackerPeriod  = "30s"
	DefaultBeaconQueue    = 16
	DefaultBeaconTimeout  = "5s"
	DefaultStorageDriver  = "memory"
	DefaultSite           = SiteUser
	envPrefix             = "WAYSTAR__"
	minTrackerPeriod      = time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultUserAgentValue = "waystar"
)

// Supported session sites.
const (
	SiteUser  = "user"
	SiteAdmin = "admin"
)

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	Session SessionConfig `koanf:"session"`
	Tracker TrackerConfig `koanf:"tracker"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL      string          `koanf:"base_url"`
	AssetBaseURL string          `koanf:"asset_base_url"`
	Timeout      string          `koanf:"timeout"`
	AdminPrefix  string          `koanf:"admin_prefix"`
	UserAgent    string          `koanf:"user_agent"`
	RateLimit    RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig throttles outgoing requests.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// StorageConfig selects where cookies and local state are persisted.
type StorageConfig struct {
	Driver   string         `koanf:"driver"`
	Badger   BadgerConfig   `koanf:"badger"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	Pool     PoolConfig     `koanf:"pool"`
}

// BadgerConfig holds embedded key-value store settings.
type BadgerConfig struct {
	Dir string `koanf:"dir"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// SessionConfig selects which front end the session store behaves like.
// RememberTTL and DefaultTTL override the site's cookie lifetimes.
type SessionConfig struct {
	Site        string `koanf:"site"`
	RememberTTL string `koanf:"remember_ttl"`
	DefaultTTL  string `koanf:"default_ttl"`
}

// TrackerConfig holds browse tracker settings.
type TrackerConfig struct {
	Interval      string `koanf:"interval"`
	BeaconQueue   int    `koanf:"beacon_queue"`
	BeaconTimeout string `koanf:"beacon_timeout"`
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// A .env file next to the config file, when present, is loaded into the process
// environment first. Environment variables use the prefix "WAYSTAR__" and
// double-underscore as the hierarchy separator, so WAYSTAR__API__BASE_URL
// overrides api.base_url. An empty configPath skips the file and relies on the
// environment and defaults.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := loadDotEnv(filepath.Join(filepath.Dir(configPath), ".env")); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// WAYSTAR__STORAGE__POOL__MAX_IDLE_CONNS -> storage.pool.max_idle_conns
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, envPrefix)
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate fills defaults, normalizes values and checks supported options.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateTracker(); err != nil {
		return err
	}

	// Validate log.level.
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		level = defaultLogLevel
	}
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	// Validate log.format.
	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	if format == "" {
		format = defaultLogFormat
	}
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}

	return nil
}

func (c *Config) validateAPI() error {
	base, err := normalizeBaseURL("api.base_url", c.API.BaseURL, DefaultBaseURL)
	if err != nil {
		return err
	}
	c.API.BaseURL = base

	asset, err := normalizeBaseURL("api.asset_base_url", c.API.AssetBaseURL, base)
	if err != nil {
		return err
	}
	c.API.AssetBaseURL = asset

	timeout := strings.TrimSpace(c.API.Timeout)
	if timeout == "" {
		timeout = DefaultTimeout
	}
	if err := positiveDuration("api.timeout", timeout); err != nil {
		return err
	}
	c.API.Timeout = timeout

	prefix := strings.TrimSpace(c.API.AdminPrefix)
	if prefix == "" {
		prefix = DefaultAdminPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("invalid api.admin_prefix %q: must start with '/'", c.API.AdminPrefix)
	}
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return fmt.Errorf("invalid api.admin_prefix %q: must not be the root path", c.API.AdminPrefix)
	}
	c.API.AdminPrefix = prefix

	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgentValue
	}

	if c.API.RateLimit.Enabled {
		if c.API.RateLimit.RPS <= 0 {
			return fmt.Errorf("invalid api.rate_limit.rps %v: must be positive when rate limiting is enabled", c.API.RateLimit.RPS)
		}
		if c.API.RateLimit.Burst <= 0 {
			return fmt.Errorf("invalid api.rate_limit.burst %d: must be positive when rate limiting is enabled", c.API.RateLimit.Burst)
		}
	}
	return nil
}

func (c *Config) validateStorage() error {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if driver == "" {
		driver = DefaultStorageDriver
	}
	switch driver {
	case "memory", "badger", "sqlite", "postgres":
		c.Storage.Driver = driver
	default:
		return fmt.Errorf("invalid storage.driver %q: must be one of %q, %q, %q, %q", c.Storage.Driver, "memory", "badger", "sqlite", "postgres")
	}

	switch driver {
	case "badger":
		dir := strings.TrimSpace(c.Storage.Badger.Dir)
		if dir == "" {
			return fmt.Errorf("storage.badger.dir is required when driver is badger")
		}
		c.Storage.Badger.Dir = dir
	case "sqlite":
		path := strings.TrimSpace(c.Storage.SQLite.Path)
		if path == "" {
			return fmt.Errorf("storage.sqlite.path is required when driver is sqlite")
		}
		c.Storage.SQLite.Path = path
	case "postgres":
		if err := c.Storage.Postgres.validate(); err != nil {
			return err
		}
	}

	c.Storage.Pool.ConnMaxLifetime = strings.TrimSpace(c.Storage.Pool.ConnMaxLifetime)
	if lm := c.Storage.Pool.ConnMaxLifetime; lm != "" {
		if err := positiveDuration("storage.pool.conn_max_lifetime", lm); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresConfig) validate() error {
	host := strings.TrimSpace(p.Host)
	if host == "" {
		return fmt.Errorf("storage.postgres.host is required when driver is postgres")
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("invalid storage.postgres.port %d: must be between 1 and 65535", p.Port)
	}
	user := strings.TrimSpace(p.User)
	if user == "" {
		return fmt.Errorf("storage.postgres.user is required when driver is postgres")
	}
	dbName := strings.TrimSpace(p.DBName)
	if dbName == "" {
		return fmt.Errorf("storage.postgres.dbname is required when driver is postgres")
	}
	sslMode := strings.TrimSpace(p.SSLMode)
	switch sslMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		// ok
	default:
		return fmt.Errorf("invalid storage.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", p.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
	}

	p.Host = host
	p.User = user
	p.DBName = dbName
	p.SSLMode = sslMode
	return nil
}

func (c *Config) validateSession() error {
	site := strings.ToLower(strings.TrimSpace(c.Session.Site))
	if site == "" {
		site = DefaultSite
	}
	switch site {
	case SiteUser, SiteAdmin:
		c.Session.Site = site
	default:
		return fmt.Errorf("invalid session.site %q: must be one of %q, %q", c.Session.Site, SiteUser, SiteAdmin)
	}

	c.Session.RememberTTL = strings.TrimSpace(c.Session.RememberTTL)
	if v := c.Session.RememberTTL; v != "" {
		if err := positiveDuration("session.remember_ttl", v); err != nil {
			return err
		}
	}
	c.Session.DefaultTTL = strings.TrimSpace(c.Session.DefaultTTL)
	if v := c.Session.DefaultTTL; v != "" {
		if err := positiveDuration("session.default_ttl", v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateTracker() error {
	interval := strings.TrimSpace(c.Tracker.Interval)
	if interval == "" {
		interval = DefaultTrackerPeriod
	}
	d, err := time.ParseDuration(interval)
	if err != nil {
		return fmt.Errorf("invalid tracker.interval %q: %w", c.Tracker.Interval, err)
	}
	if d < minTrackerPeriod {
		return fmt.Errorf("invalid tracker.interval %q: must be at least %s", c.Tracker.Interval, minTrackerPeriod)
	}
	c.Tracker.Interval = interval

	if c.Tracker.BeaconQueue < 0 {
		return fmt.Errorf("invalid tracker.beacon_queue %d: must not be negative", c.Tracker.BeaconQueue)
	}
	if c.Tracker.BeaconQueue == 0 {
		c.Tracker.BeaconQueue = DefaultBeaconQueue
	}

	timeout := strings.TrimSpace(c.Tracker.BeaconTimeout)
	if timeout == "" {
		timeout = DefaultBeaconTimeout
	}
	if err := positiveDuration("tracker.beacon_timeout", timeout); err != nil {
		return err
	}
	c.Tracker.BeaconTimeout = timeout
	return nil
}

func normalizeBaseURL(field, raw, fallback string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		v = fallback
	}
	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid %s %q: scheme must be http or https", field, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid %s %q: host is required", field, raw)
	}
	return strings.TrimRight(v, "/"), nil
}

func positiveDuration(field, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, v, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", field, v)
	}
	return nil
}

// Duration parses a duration that Validate has already checked. It returns
// fallback when v is empty or malformed.
func Duration(v string, fallback time.Duration) time.Duration {
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
