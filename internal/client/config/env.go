package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/snackkiosk/internal/timex"
)

// EnvPrefix starts every environment variable the kiosk reads.
const EnvPrefix = "KIOSK_"

// parseEnv overlays cfg with KIOSK_* variables. lookup (normally
// os.LookupEnv) wins over values from cfg.EnvFile, so a .env file never
// overrides the real environment. A missing .env file is not an error.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	dotenv := map[string]string{}
	if cfg.EnvFile != "" {
		m, err := godotenv.Read(cfg.EnvFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("reading %s: %w", cfg.EnvFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"SERVER_URL", &cfg.ServerURL},
		{"ADMIN_CODE_HASH", &cfg.AdminCodeHash},
		{"JOURNAL_PATH", &cfg.JournalPath},
		{"UI", &cfg.UI},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"LOG_FORMAT", &cfg.LogFormat},
		{"LOG_FILE", &cfg.LogFile},
	}
	for _, s := range strs {
		if v, ok := get(s.name); ok {
			*s.dst = v
		}
	}

	durs := []struct {
		name string
		dst  *time.Duration
	}{
		{"LOGOUT_DELAY", &cfg.LogoutDelay},
		{"REQUEST_TIMEOUT", &cfg.RequestTimeout},
		{"ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval},
	}
	for _, d := range durs {
		v, ok := get(d.name)
		if !ok {
			continue
		}
		parsed, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, d.name, err)
		}
		*d.dst = parsed
	}

	if v, ok := get("JOURNAL_MAX_ENTRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sJOURNAL_MAX_ENTRIES: %w", EnvPrefix, err)
		}
		cfg.JournalMaxEntries = n
	}
	return nil
}
