package kiosk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

func TestIdle_LogsOutAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	h.clk.Advance(logoutDelay - time.Millisecond)
	require.NotNil(t, h.ctrl.Snapshot().Session)

	h.clk.Advance(time.Millisecond)
	v := h.ctrl.Snapshot()
	assert.Nil(t, v.Session)
	assert.Equal(t, ScreenLogin, v.Screen)

	entries, err := h.journal.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.JournalLogout, entries[0].Kind)
	assert.Equal(t, "inactivity", entries[0].Detail)
}

func TestIdle_DebouncedByActivity(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	// activity at 3s, 9s and 15s: logout is due at 25s, not earlier
	h.clk.Advance(3 * time.Second)
	h.ctrl.Touch()
	h.clk.Advance(6 * time.Second)
	h.ctrl.Touch()
	h.clk.Advance(6 * time.Second)
	h.ctrl.Touch()

	h.clk.Advance(logoutDelay - time.Nanosecond)
	require.NotNil(t, h.ctrl.Snapshot().Session, "timer fired before the delay after the last activity")

	h.clk.Advance(time.Nanosecond)
	assert.Nil(t, h.ctrl.Snapshot().Session)
}

func TestIdle_RapidActivityKeepsOneTimer(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	for i := 0; i < 200; i++ {
		h.ctrl.Touch()
	}
	assert.Equal(t, 1, h.clk.PendingCount())

	h.clk.Advance(logoutDelay)
	assert.Nil(t, h.ctrl.Snapshot().Session)
	assert.Equal(t, 0, h.clk.PendingCount())

	logouts := 0
	for _, k := range h.kinds(t) {
		if k == models.JournalLogout {
			logouts++
		}
	}
	assert.Equal(t, 1, logouts)
}

func TestIdle_TouchWithoutSessionSchedulesNothing(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Touch()
	assert.Equal(t, 0, h.clk.PendingCount())

	h.loginAlice(t)
	h.ctrl.Logout(context.Background(), ReasonManual)
	h.ctrl.Touch()
	assert.Equal(t, 0, h.clk.PendingCount())
}

func TestIdle_StaleTimerDoesNotEndNewSession(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	h.clk.Advance(8 * time.Second)
	h.ctrl.Logout(context.Background(), ReasonManual)
	h.loginAlice(t)

	// the first session's deadline passes; the second session is 2s old
	h.clk.Advance(2 * time.Second)
	require.NotNil(t, h.ctrl.Snapshot().Session)

	h.clk.Advance(8 * time.Second)
	assert.Nil(t, h.ctrl.Snapshot().Session)
}

func TestIdle_TriggerScanCountsAsActivity(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	h.clk.Advance(9 * time.Second)
	_ = h.ctrl.TriggerScan(context.Background(), "123")

	h.clk.Advance(9 * time.Second)
	assert.NotNil(t, h.ctrl.Snapshot().Session)
}
