// Package cli is the line-oriented kiosk frontend.
//
// It reads one command per line, drives the kiosk controller and prints the
// resulting status. PINs and the admin code are read from the terminal
// without echo and fed to the controller as keypad presses. Every input line
// counts as user activity for the inactivity logout.
//
// The loop is started via CLI.Run, which blocks until the user exits, stdin
// closes or the context is cancelled. See runREPL for the command set.
package cli
