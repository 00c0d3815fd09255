package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

// UI frontends selectable with -u.
const (
	UIAuto = "auto"
	UITUI  = "tui"
	UICLI  = "cli"
)

// Config holds runtime settings for the kiosk.
//
// Durations are time.Duration values; flags give them in whole seconds,
// JSON and the environment accept "10s" or integer nanoseconds.
type Config struct {
	ServerURL           string
	LogoutDelay         time.Duration
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration

	// AdminCodeHash is a bcrypt hash of the admin code. Empty means the
	// code is checked by the backend.
	AdminCodeHash string

	// JournalPath is the SQLite activity journal. Empty disables it.
	JournalPath       string
	JournalMaxEntries int

	UI        string
	LogLevel  string
	LogFormat string
	LogFile   string

	// EnvFile is read before the process environment is consulted.
	EnvFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.LogoutDelay = 10 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.AdminCodeHash = ""
	c.JournalPath = "kiosk.db"
	c.JournalMaxEntries = 10000
	c.UI = UIAuto
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogFile = ""
	c.EnvFile = ".env"
}

// Validate reports the first setting the kiosk cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q: must be an absolute http(s) url", c.ServerURL)
	}
	if c.LogoutDelay <= 0 {
		return fmt.Errorf("logout delay must be positive, got %s", c.LogoutDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.JournalMaxEntries <= 0 {
		return fmt.Errorf("journal max entries must be positive, got %d", c.JournalMaxEntries)
	}
	switch c.UI {
	case UIAuto, UITUI, UICLI:
	default:
		return fmt.Errorf("ui %q: want auto, tui or cli", c.UI)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c or
// -config, then the .env file and KIOSK_* environment variables, then the
// remaining flags in args. Later sources take precedence over earlier ones.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args and the process environment. It panics on
// any error; a kiosk with a broken configuration must not start.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		panic(err)
	}
	return cfg
}
