package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/snackkiosk/internal/flagx"
	"github.com/dmitrijs2005/snackkiosk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Every field
// is a pointer so keys missing from the file leave the current value alone.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	LogoutDelay         *timex.Duration `json:"logout_delay"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	AdminCodeHash       *string         `json:"admin_code_hash"`
	JournalPath         *string         `json:"journal_path"`
	JournalMaxEntries   *int            `json:"journal_max_entries"`
	UI                  *string         `json:"ui"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	LogFile             *string         `json:"log_file"`
	EnvFile             *string         `json:"env_file"`
}

// parseJson overlays cfg with the file named by -c or -config in args. The
// file may contain // and /* */ comments and trailing commas. Without either
// flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setDuration(&cfg.LogoutDelay, jc.LogoutDelay)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setString(&cfg.AdminCodeHash, jc.AdminCodeHash)
	setString(&cfg.JournalPath, jc.JournalPath)
	if jc.JournalMaxEntries != nil {
		cfg.JournalMaxEntries = *jc.JournalMaxEntries
	}
	setString(&cfg.UI, jc.UI)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.EnvFile, jc.EnvFile)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
