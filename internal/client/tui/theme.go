package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
)

// Theme defines the kiosk palette. All colors are ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	BalancePositive lipgloss.Color
	BalanceNegative lipgloss.Color

	StatusProcessing lipgloss.Color
	StatusSuccess    lipgloss.Color
	StatusNewItem    lipgloss.Color
	StatusUndone     lipgloss.Color
	StatusError      lipgloss.Color

	Online  lipgloss.Color
	Offline lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// StatusColor returns the color of a status line.
func (theme Theme) StatusColor(kind kiosk.StatusKind) lipgloss.Color {
	switch kind {
	case kiosk.StatusProcessing:
		return theme.StatusProcessing
	case kiosk.StatusSuccess:
		return theme.StatusSuccess
	case kiosk.StatusNewItem:
		return theme.StatusNewItem
	case kiosk.StatusUndone:
		return theme.StatusUndone
	case kiosk.StatusError:
		return theme.StatusError
	default:
		return theme.NormalText
	}
}

// DefaultTheme targets dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	BalancePositive: lipgloss.Color("114"), // green
	BalanceNegative: lipgloss.Color("196"), // red

	StatusProcessing: lipgloss.Color("220"), // amber
	StatusSuccess:    lipgloss.Color("114"),
	StatusNewItem:    lipgloss.Color("75"), // blue
	StatusUndone:     lipgloss.Color("141"),
	StatusError:      lipgloss.Color("196"),

	Online:  lipgloss.Color("114"),
	Offline: lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
