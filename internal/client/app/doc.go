// Package app wires the kiosk together: logger, backend client, journal,
// services, the session controller and the chosen frontend. App.Run also
// keeps the online indicator current and stops everything on SIGINT or
// SIGTERM.
package app
