// Package common contains constants, sentinel errors and small helpers
// shared by the kiosk packages.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request id that the
// kiosk attaches to every backend call.
const RequestIDHeaderName = "X-Request-ID"

// KeypadMaxDigits is the longest digit sequence the keypad accepts.
const KeypadMaxDigits = 8

// MinPinLength is the shortest PIN the kiosk will submit to the backend.
const MinPinLength = 4
