// Package flagx lets several loaders parse the same os.Args without
// tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowed (with their values) from
// args. Names are given with a single dash ("-a"); the double-dash spelling
// ("--a") of an allowed flag is accepted too, as the flag package does.
//
// Both "-a value" and "-a=value" forms are recognised. A value is taken from
// the next argument only when it does not itself start with a dash.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[strings.TrimLeft(f, "-")] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := names[name]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigFileFlag returns the value of -c / -config found in args, or "" when
// neither is present.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
