// Package kiosk implements the kiosk session controller.
//
// A Controller owns the only mutable kiosk state: the logged-in session, the
// numeric keypad and the inactivity timer. Frontends (the line REPL and the
// full-screen TUI) translate user input into Controller calls and render the
// View it publishes; they hold no state of their own beyond input fields.
//
// Every method is safe for concurrent use. The controller's lock is never
// held across a backend call, so a slow request does not freeze the keypad
// or the idle timer. Responses that arrive after the session they belong to
// has ended are dropped.
package kiosk
