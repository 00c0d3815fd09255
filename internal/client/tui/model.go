package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

const gridColumns = 3

// viewMsg carries a controller notification into the event loop.
type viewMsg struct{ view kiosk.View }

// doneMsg reports the end of a controller call started as a tea.Cmd.
type doneMsg struct {
	op  string
	err error
}

type stockField int

const (
	fieldBarcode stockField = iota
	fieldQty
)

// Model is the bubbletea model of the kiosk screen.
type Model struct {
	ctx   context.Context
	ctrl  *kiosk.Controller
	log   logging.Logger
	keys  KeyMap
	theme Theme

	view       kiosk.View
	cursor     int
	tile       int
	confirming bool
	pending    int

	barcode      textinput.Model
	stockBarcode textinput.Model
	stockQty     textinput.Model
	stockFocus   stockField

	width int
}

// NewModel builds a model showing the controller's current state. ctx is
// passed to every controller call the model starts.
func NewModel(ctx context.Context, ctrl *kiosk.Controller, log logging.Logger) Model {
	m := Model{
		ctx:          ctx,
		ctrl:         ctrl,
		log:          log,
		keys:         DefaultKeyMap,
		theme:        DefaultTheme,
		barcode:      newInput("scan or type a barcode", 64),
		stockBarcode: newInput("barcode", 64),
		stockQty:     newInput("qty", 6),
	}
	m.stockQty.SetValue(kiosk.DefaultQuantity)
	m.setView(ctrl.Snapshot())
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		if msg.view.Version > m.view.Version {
			m.setView(msg.view)
		}
		return m, nil

	case doneMsg:
		m.pending--
		if msg.err != nil {
			m.log.Debug(m.ctx, "action finished with error", "op", msg.op, "err", msg.err)
		}
		if msg.op == "stock" && msg.err == nil {
			m.resetStockInputs()
		}
		m.sync()
		return m, nil

	case tea.MouseMsg:
		m.ctrl.Touch()
		return m, nil

	case tea.KeyMsg:
		m.ctrl.Touch()
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch {
	case m.view.Alert != "":
		if key.Matches(msg, m.keys.Submit) || key.Matches(msg, m.keys.Cancel) {
			m.ctrl.DismissAlert()
			m.sync()
		}
		return m, nil

	case m.confirming:
		return m.handleConfirmKeys(msg)

	case m.view.Keypad.Open:
		return m.handleKeypadKeys(msg)
	}

	switch m.view.Screen {
	case kiosk.ScreenLogin:
		return m.handleLoginKeys(msg)
	case kiosk.ScreenScan:
		return m.handleScanKeys(msg)
	case kiosk.ScreenStocktake:
		return m.handleStocktakeKeys(msg)
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirming = false
		return m, m.run("pin", func(ctx context.Context) error {
			return m.ctrl.HandlePinButton(ctx, func(string) bool { return true })
		})
	case key.Matches(msg, m.keys.No):
		m.confirming = false
	}
	return m, nil
}

func (m Model) handleKeypadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isDigitKey(msg):
		_ = m.ctrl.PressKey(m.ctx, string(msg.Runes))
	case key.Matches(msg, m.keys.Backspace):
		_ = m.ctrl.PressKey(m.ctx, "clear")
	case key.Matches(msg, m.keys.Cancel):
		_ = m.ctrl.PressKey(m.ctx, "close")
	case key.Matches(msg, m.keys.Submit):
		return m, m.run("keypad", func(ctx context.Context) error {
			return m.ctrl.PressKey(ctx, "enter")
		})
	}
	m.sync()
	return m, nil
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.view.Users)
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = clamp(m.cursor-1, n)
	case key.Matches(msg, m.keys.Right):
		m.cursor = clamp(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-gridColumns, n)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+gridColumns, n)
	case key.Matches(msg, m.keys.Choose):
		if n == 0 {
			return m, nil
		}
		user := m.view.Users[m.cursor]
		return m, m.run("select", func(ctx context.Context) error {
			return m.ctrl.SelectUser(ctx, user)
		})
	case key.Matches(msg, m.keys.Admin):
		_ = m.ctrl.OpenAdmin()
		m.sync()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run("refresh", m.ctrl.Refresh)
	}
	return m, nil
}

func (m Model) handleScanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Undo):
		return m, m.run("undo", m.ctrl.UndoLast)

	case key.Matches(msg, m.keys.PinButton):
		if m.view.PinButton.Remove {
			m.confirming = true
			return m, nil
		}
		_ = m.ctrl.HandlePinButton(m.ctx, nil)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.run("logout", func(ctx context.Context) error {
			m.ctrl.Logout(ctx, kiosk.ReasonManual)
			return nil
		})

	case key.Matches(msg, m.keys.NextTile):
		m.tile = wrap(m.tile+1, len(m.view.Tiles))
		return m, nil

	case key.Matches(msg, m.keys.PrevTile):
		m.tile = wrap(m.tile-1, len(m.view.Tiles))
		return m, nil

	case key.Matches(msg, m.keys.BuyTile):
		if len(m.view.Tiles) == 0 {
			return m, nil
		}
		barcode := m.view.Tiles[m.tile].Barcode
		return m, m.run("scan", func(ctx context.Context) error {
			return m.ctrl.TriggerScan(ctx, barcode)
		})

	case key.Matches(msg, m.keys.Submit):
		barcode := m.barcode.Value()
		m.barcode.Reset()
		return m, m.run("scan", func(ctx context.Context) error {
			return m.ctrl.Scan(ctx, barcode)
		})
	}

	var cmd tea.Cmd
	m.barcode, cmd = m.barcode.Update(msg)
	return m, cmd
}

func (m Model) handleStocktakeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.ExitStocktake()
		m.resetStockInputs()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.toggleStockField()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.stockFocus == fieldBarcode {
			m.toggleStockField()
			return m, nil
		}
		barcode, qty := m.stockBarcode.Value(), m.stockQty.Value()
		return m, m.run("stock", func(ctx context.Context) error {
			return m.ctrl.SubmitStock(ctx, barcode, qty)
		})
	}

	var cmd tea.Cmd
	if m.stockFocus == fieldBarcode {
		m.stockBarcode, cmd = m.stockBarcode.Update(msg)
	} else {
		m.stockQty, cmd = m.stockQty.Update(msg)
	}
	return m, cmd
}

// run starts a controller call off the event loop.
func (m *Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func (m *Model) sync() { m.setView(m.ctrl.Snapshot()) }

func (m *Model) setView(v kiosk.View) {
	if v.Screen != m.view.Screen {
		m.confirming = false
	}
	m.view = v
	m.cursor = clamp(m.cursor, len(v.Users))
	m.tile = clamp(m.tile, len(v.Tiles))
	m.focusInputs()
}

func (m *Model) focusInputs() {
	m.barcode.Blur()
	m.stockBarcode.Blur()
	m.stockQty.Blur()
	if m.view.Keypad.Open || m.view.Alert != "" {
		return
	}
	switch m.view.Screen {
	case kiosk.ScreenScan:
		_ = m.barcode.Focus()
	case kiosk.ScreenStocktake:
		if m.stockFocus == fieldBarcode {
			_ = m.stockBarcode.Focus()
		} else {
			_ = m.stockQty.Focus()
		}
	}
}

func (m *Model) toggleStockField() {
	if m.stockFocus == fieldBarcode {
		m.stockFocus = fieldQty
	} else {
		m.stockFocus = fieldBarcode
	}
	m.focusInputs()
}

func (m *Model) resetStockInputs() {
	m.stockBarcode.Reset()
	m.stockQty.SetValue(kiosk.DefaultQuantity)
	m.stockFocus = fieldBarcode
	m.focusInputs()
}

func isDigitKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9'
}

func clamp(i, n int) int {
	switch {
	case n == 0 || i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
