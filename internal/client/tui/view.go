package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
)

// View implements tea.Model.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())

	switch {
	case m.view.Alert != "":
		sections = append(sections, m.renderAlert())
	case m.confirming:
		sections = append(sections, m.renderConfirm())
	case m.view.Keypad.Open:
		sections = append(sections, m.renderKeypad())
	default:
		switch m.view.Screen {
		case kiosk.ScreenLogin:
			sections = append(sections, m.renderLogin())
		case kiosk.ScreenScan:
			sections = append(sections, m.renderScan())
		case kiosk.ScreenStocktake:
			sections = append(sections, m.renderStocktake())
		}
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground).Render("SNACK KIOSK")

	net := lipgloss.NewStyle().Foreground(m.theme.Offline).Render("○ offline")
	if m.view.Online {
		net = lipgloss.NewStyle().Foreground(m.theme.Online).Render("● online")
	}
	return title + "  " + net + "\n"
}

func (m Model) renderLogin() string {
	if len(m.view.Users) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("No users loaded. Press r to reload.")
	}

	cell := lipgloss.NewStyle().Width(18).Padding(0, 1)
	selected := cell.
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground).
		Bold(true)

	var rows []string
	var row []string
	for i, u := range m.view.Users {
		label := u.Name
		if u.HasPin {
			label += " 🔒"
		}
		style := cell
		if i == m.cursor {
			style = selected
		}
		row = append(row, style.Render(label))
		if len(row) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return "Who's snacking?\n\n" + body + "\n\n" + m.renderTiles(false)
}

func (m Model) renderScan() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.view.Welcome))
	b.WriteString("\n")

	balance := m.theme.BalancePositive
	if m.view.BalanceNegative {
		balance = m.theme.BalanceNegative
	}
	b.WriteString("Balance: ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(balance).Render(m.view.Balance))
	b.WriteString("    ")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render(m.view.PinButton.Label))
	b.WriteString("\n\n")

	b.WriteString(m.barcode.View())
	b.WriteString("\n")

	if st := m.view.Status; st.Text != "" {
		line := st.Text
		if st.Undo {
			line += "   [C-u undo]"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.StatusColor(st.Kind)).Render(line))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTiles(true))
	return b.String()
}

func (m Model) renderTiles(selectable bool) string {
	if len(m.view.Tiles) == 0 {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 1)

	tiles := make([]string, 0, len(m.view.Tiles))
	for i, t := range m.view.Tiles {
		stock := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		if t.OutOfStock() {
			stock = lipgloss.NewStyle().Foreground(m.theme.StatusError).Bold(true)
		}
		style := box
		if selectable && i == m.tile {
			style = box.BorderForeground(m.theme.SelectedForeground)
		}
		tiles = append(tiles, style.Render(t.Label+"\n"+stock.Render(t.Text())))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m Model) renderStocktake() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Stocktake"))
	b.WriteString("\n\n")
	b.WriteString("Barcode  ")
	b.WriteString(m.stockBarcode.View())
	b.WriteString("\n")
	b.WriteString("Quantity ")
	b.WriteString(m.stockQty.View())
	b.WriteString("\n\n")
	if msg := m.view.StocktakeMessage; msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderTiles(false))
	return b.String()
}

func (m Model) renderKeypad() string {
	kp := m.view.Keypad
	display := kp.Mask
	if display == "" {
		display = " "
	}

	field := lipgloss.NewStyle().
		Width(12).
		Align(lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.BorderColor).
		Render(display)

	pad := strings.Join([]string{"1 2 3", "4 5 6", "7 8 9", "  0  "}, "\n")
	body := lipgloss.JoinVertical(lipgloss.Center, lipgloss.NewStyle().Bold(true).Render(kp.Title), field, pad)

	return m.modal().Render(body)
}

func (m Model) renderAlert() string {
	return m.modal().Render(m.view.Alert + "\n\n" +
		lipgloss.NewStyle().Foreground(m.theme.HelpText).Render("enter: OK"))
}

func (m Model) renderConfirm() string {
	return m.modal().Render("Remove PIN?\n\n" +
		lipgloss.NewStyle().Foreground(m.theme.HelpText).Render("y: yes   n: no"))
}

func (m Model) modal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(m.theme.SelectedForeground).
		Padding(1, 3).
		Align(lipgloss.Center)
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch {
	case m.view.Alert != "":
		bindings = []key.Binding{m.keys.Submit}
	case m.confirming:
		bindings = []key.Binding{m.keys.Yes, m.keys.No}
	case m.view.Keypad.Open:
		bindings = []key.Binding{m.keys.Submit, m.keys.Backspace, m.keys.Cancel}
	case m.view.Screen == kiosk.ScreenLogin:
		bindings = []key.Binding{m.keys.Choose, m.keys.Admin, m.keys.Refresh, m.keys.Quit}
	case m.view.Screen == kiosk.ScreenScan:
		bindings = []key.Binding{m.keys.Submit, m.keys.Undo, m.keys.PinButton, m.keys.NextTile, m.keys.BuyTile, m.keys.Logout}
	case m.view.Screen == kiosk.ScreenStocktake:
		bindings = []key.Binding{m.keys.Submit, m.keys.NextField, m.keys.Cancel}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return "\n" + lipgloss.NewStyle().Foreground(m.theme.HelpText).Render(strings.Join(parts, " • "))
}
