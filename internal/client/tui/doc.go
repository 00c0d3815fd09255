// Package tui is the full-screen kiosk frontend built on bubbletea.
//
// The Model renders the controller's View and turns key presses into
// controller calls. Calls that reach the backend run as tea.Cmds so the
// screen keeps redrawing; controller notifications arrive as viewMsg. Every
// key press and mouse event counts as user activity.
package tui
