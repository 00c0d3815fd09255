// Package buildinfo exposes values stamped in at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/snackkiosk/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the build stamp, one field per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// String is a one-line form for log records.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
