package common

// WipeByteArray zeroes b in place. Used for keypad buffers and admin codes
// once they have been submitted. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
