package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

// TUI runs the kiosk as a full-screen terminal program.
type TUI struct {
	ctrl    *kiosk.Controller
	log     logging.Logger
	options []tea.ProgramOption
}

// New builds a TUI. Extra options are passed to tea.NewProgram after the
// defaults (alternate screen, mouse motion).
func New(ctrl *kiosk.Controller, log logging.Logger, options ...tea.ProgramOption) *TUI {
	return &TUI{ctrl: ctrl, log: log, options: options}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := NewModel(ctx, t.ctrl, t.log)

	options := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}, t.options...)
	program := tea.NewProgram(model, options...)

	// Notifications may be published from inside Update, so they must not
	// block on the event loop. Out-of-order delivery is dropped by Version.
	t.ctrl.Subscribe(func(v kiosk.View) {
		go program.Send(viewMsg{view: v})
	})

	_, err := program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
