package kiosk

import (
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// keypad is the numeric entry pad. pendingUserID is only meaningful in
// ModeLogin and buf never holds more than common.KeypadMaxDigits digits.
type keypad struct {
	mode          KeypadMode
	pendingUserID int64
	buf           []byte
}

func (k *keypad) isOpen() bool { return k.mode != ModeNone }

// open always starts from an empty buffer.
func (k *keypad) open(mode KeypadMode, userID int64) {
	k.clear()
	k.mode = mode
	k.pendingUserID = 0
	if mode == ModeLogin {
		k.pendingUserID = userID
	}
}

// press appends d unless the buffer is full. It reports whether d was taken.
func (k *keypad) press(d byte) bool {
	if len(k.buf) >= common.KeypadMaxDigits {
		return false
	}
	k.buf = append(k.buf, d)
	return true
}

func (k *keypad) clear() {
	common.WipeByteArray(k.buf)
	k.buf = k.buf[:0]
}

func (k *keypad) close() {
	k.clear()
	k.mode = ModeNone
	k.pendingUserID = 0
}

func (k *keypad) value() string { return string(k.buf) }

func (k *keypad) view() KeypadView {
	if !k.isOpen() {
		return KeypadView{}
	}
	return KeypadView{Open: true, Mode: k.mode, Title: keypadTitle(k.mode), Mask: mask(len(k.buf))}
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
