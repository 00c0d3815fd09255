// Package cryptox hashes and checks the local admin code.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// ErrNoAdminHash is returned when no local admin hash is configured.
var ErrNoAdminHash = errors.New("no admin code hash configured")

// HashAdminCode returns a bcrypt hash of code suitable for the
// admin_code_hash config key.
func HashAdminCode(code string) (string, error) {
	if len(code) < common.MinPinLength {
		return "", common.ErrPinTooShort
	}
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin code: %w", err)
	}
	return string(h), nil
}

// CheckAdminCode reports whether code matches hash. A mismatch is not an
// error; a malformed hash is.
func CheckAdminCode(hash, code string) (bool, error) {
	if hash == "" {
		return false, ErrNoAdminHash
	}

	buf := []byte(code)
	defer common.WipeByteArray(buf)

	err := bcrypt.CompareHashAndPassword([]byte(hash), buf)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("check admin code: %w", err)
	}
}
