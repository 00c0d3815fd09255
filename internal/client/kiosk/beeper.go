package kiosk

import (
	"io"
	"sync"
)

// Beeper plays the purchase confirmation tone.
type Beeper interface {
	Beep()
}

// TerminalBeeper rings the terminal bell.
type TerminalBeeper struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *TerminalBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.W.Write([]byte{'\a'})
}

type nopBeeper struct{}

func (nopBeeper) Beep() {}
