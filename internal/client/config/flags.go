package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/snackkiosk/internal/flagx"
)

var ownFlags = []string{"-a", "-t", "-r", "-i", "-j", "-u", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base url
//	-t int      inactivity logout delay in seconds
//	-r int      backend request timeout in seconds
//	-i int      online check interval in seconds
//	-j string   journal database path ("" disables the journal)
//	-u string   frontend: auto, tui or cli
//	-l string   log level: debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("kiosk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base url")
	logoutDelay := fs.Int("t", int(cfg.LogoutDelay.Seconds()), "inactivity logout delay (in seconds)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "backend request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.JournalPath, "j", cfg.JournalPath, "journal database path")
	fs.StringVar(&cfg.UI, "u", cfg.UI, "frontend: auto, tui or cli")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] {
		cfg.LogoutDelay = time.Duration(*logoutDelay) * time.Second
	}
	if set["r"] {
		cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	}
	if set["i"] {
		cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	}
	return nil
}
