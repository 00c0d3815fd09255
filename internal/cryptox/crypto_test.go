package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

func TestHashAdminCode_RoundTrip(t *testing.T) {
	hash, err := HashAdminCode("2468")
	require.NoError(t, err)
	assert.NotEqual(t, "2468", hash)

	ok, err := CheckAdminCode(hash, "2468")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckAdminCode(hash, "1357")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashAdminCode_SaltsEachHash(t *testing.T) {
	a, err := HashAdminCode("2468")
	require.NoError(t, err)
	b, err := HashAdminCode("2468")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashAdminCode_TooShort(t *testing.T) {
	_, err := HashAdminCode("12")
	require.ErrorIs(t, err, common.ErrPinTooShort)
}

func TestCheckAdminCode_NoHash(t *testing.T) {
	_, err := CheckAdminCode("", "2468")
	require.ErrorIs(t, err, ErrNoAdminHash)
}

func TestCheckAdminCode_MalformedHash(t *testing.T) {
	ok, err := CheckAdminCode("not-a-bcrypt-hash", "2468")
	require.Error(t, err)
	assert.False(t, ok)
}
