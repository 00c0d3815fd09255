package kiosk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/client/clienttest"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

func TestNew_StartsOnLoginScreen(t *testing.T) {
	h := newHarness(t)

	v := h.ctrl.Snapshot()
	assert.Equal(t, ScreenLogin, v.Screen)
	assert.Nil(t, v.Session)
	assert.False(t, v.Keypad.Open)
	assert.Equal(t, []models.UserTile{alice, bob}, v.Users)
	require.Len(t, v.Tiles, 2)
	assert.Equal(t, "(5 left)", v.Tiles[0].Text())
}

func TestSelectUser_WithoutPinLogsInDirectly(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.SelectUser(context.Background(), alice))

	calls := h.srv.Calls("/login")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"user_id": float64(7), "pin": ""}, calls[0].Body)
	for _, v := range h.published() {
		assert.False(t, v.Keypad.Open, "keypad must never be shown")
	}
	assert.Equal(t, ScreenScan, h.ctrl.Snapshot().Screen)
}

func TestLogin_RendersBalanceAndPinButton(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	v := h.ctrl.Snapshot()
	assert.Equal(t, ScreenScan, v.Screen)
	assert.Equal(t, "Hi Alice", v.Welcome)
	assert.Equal(t, "$12.50", v.Balance)
	assert.False(t, v.BalanceNegative)
	assert.Equal(t, PinButton{Label: "🔒 Set PIN", Remove: false}, v.PinButton)
	assert.Equal(t, &models.Session{UserID: 7, Name: "Alice", Balance: 12.5}, v.Session)
	assert.Equal(t, 1, h.clk.PendingCount(), "idle timer armed")
	assert.Equal(t, []models.JournalKind{models.JournalLogin}, h.kinds(t))
}

func TestLogin_NegativeBalanceAndPinSet(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{
		"success": true, "user_id": 8, "name": "Bob", "balance": -3, "has_pin": true,
	})

	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))
	h.press(t, "1", "2", "3", "4", "enter")

	v := h.ctrl.Snapshot()
	assert.Equal(t, "$-3.00", v.Balance)
	assert.True(t, v.BalanceNegative)
	assert.Equal(t, PinButton{Label: "🔓 Remove PIN", Remove: true}, v.PinButton)
	assert.False(t, v.Keypad.Open)
	assert.Equal(t, "1234", h.srv.Calls("/login")[0].Body["pin"])
}

func TestSelectUser_WithPinOpensKeypad(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))

	v := h.ctrl.Snapshot()
	assert.Equal(t, KeypadView{Open: true, Mode: ModeLogin, Title: "Enter PIN", Mask: ""}, v.Keypad)
	assert.Equal(t, 0, h.srv.CallCount("/login"))
	assert.Equal(t, ScreenLogin, v.Screen)
}

func TestLogin_FailureClearsBufferKeypadStaysOpen(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{"success": false, "error": "Wrong PIN"})

	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))
	h.press(t, "9", "9", "9", "9")
	err := h.ctrl.PressKey(context.Background(), "enter")
	require.ErrorIs(t, err, client.ErrRejected)

	v := h.ctrl.Snapshot()
	assert.Equal(t, "Wrong PIN", v.Alert)
	assert.True(t, v.Keypad.Open)
	assert.Equal(t, ModeLogin, v.Keypad.Mode)
	assert.Equal(t, "", v.Keypad.Mask)
	assert.Nil(t, v.Session)
	assert.Equal(t, ScreenLogin, v.Screen)
	assert.Equal(t, 0, h.clk.PendingCount())

	// retry goes to the same pending user
	h.press(t, "1", "2", "3", "4", "enter")
	calls := h.srv.Calls("/login")
	require.Len(t, calls, 2)
	assert.Equal(t, float64(8), calls[1].Body["user_id"])
	assert.Equal(t, []models.JournalKind{models.JournalLoginFailed, models.JournalLoginFailed}, h.kinds(t))
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{"success": false})

	_ = h.ctrl.AttemptLogin(context.Background(), 7, "")
	assert.Equal(t, "Login Failed", h.ctrl.Snapshot().Alert)
}

func TestLogin_NetworkFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.srv.Close()

	err := h.ctrl.SelectUser(context.Background(), alice)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "Network error, please try again", h.ctrl.Snapshot().Alert)
}

func TestSelectUser_WhileLoggedIn(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)

	require.ErrorIs(t, h.ctrl.SelectUser(context.Background(), bob), common.ErrSessionActive)
	assert.Equal(t, 1, h.srv.CallCount("/login"))
}

func TestLogout_ResetsEverything(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)
	usersBefore := h.srv.CallCount("/users")

	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), nil))
	h.press(t, "1", "2")
	h.ctrl.Logout(context.Background(), ReasonManual)

	v := h.ctrl.Snapshot()
	assert.Equal(t, ScreenLogin, v.Screen)
	assert.Nil(t, v.Session)
	assert.False(t, v.Keypad.Open)
	assert.Equal(t, StatusNone, v.Status.Kind)
	assert.Empty(t, v.Welcome)
	assert.Equal(t, 0, h.clk.PendingCount())
	assert.Equal(t, usersBefore+1, h.srv.CallCount("/users"), "login grid reloaded")

	entries, err := h.journal.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.JournalLogout, entries[0].Kind)
	assert.Equal(t, "manual", entries[0].Detail)
}

func TestLogout_WithoutSessionIsHarmless(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Logout(context.Background(), ReasonManual)

	assert.Equal(t, ScreenLogin, h.ctrl.Snapshot().Screen)
	assert.Empty(t, h.kinds(t))
}

func TestKeypad_OpenAlwaysStartsEmpty(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))
	h.press(t, "1", "2", "3")
	assert.Equal(t, "***", h.ctrl.Snapshot().Keypad.Mask)
	h.ctrl.CloseKeypad()

	require.NoError(t, h.ctrl.OpenAdmin())
	v := h.ctrl.Snapshot()
	assert.Equal(t, "", v.Keypad.Mask)
	assert.Equal(t, "Enter Admin Code", v.Keypad.Title)

	// reopening without closing also starts fresh
	h.press(t, "5", "5")
	require.NoError(t, h.ctrl.OpenKeypad(ModeLogin, 8))
	assert.Equal(t, "", h.ctrl.Snapshot().Keypad.Mask)
}

func TestKeypad_NinthDigitIgnored(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))

	h.press(t, "1", "2", "3", "4", "5", "6", "7", "8")
	before := len(h.published())
	require.NoError(t, h.ctrl.PressKey(context.Background(), "9"))

	assert.Equal(t, "********", h.ctrl.Snapshot().Keypad.Mask)
	assert.Equal(t, before, len(h.published()), "ignored digit publishes nothing")

	h.press(t, "enter")
	assert.Equal(t, "12345678", h.srv.Calls("/login")[0].Body["pin"])
}

func TestKeypad_ClearAndClose(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))

	h.press(t, "1", "2", "clear")
	v := h.ctrl.Snapshot()
	assert.True(t, v.Keypad.Open)
	assert.Equal(t, "", v.Keypad.Mask)

	h.press(t, "close")
	assert.False(t, h.ctrl.Snapshot().Keypad.Open)
	require.ErrorIs(t, h.ctrl.PressKey(context.Background(), "1"), common.ErrKeypadClosed)
}

func TestKeypad_UnknownKey(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.SelectUser(context.Background(), bob))

	for _, k := range []string{"a", "12", "", "*"} {
		require.ErrorIs(t, h.ctrl.PressKey(context.Background(), k), common.ErrUnknownKeypadKey, k)
	}
}

func TestOpenKeypad_Preconditions(t *testing.T) {
	h := newHarness(t)

	require.ErrorIs(t, h.ctrl.OpenKeypad(ModeSetPin, 0), common.ErrNoSession)
	require.ErrorIs(t, h.ctrl.OpenKeypad(ModeNone, 0), common.ErrKeypadClosed)

	h.loginAlice(t)
	require.ErrorIs(t, h.ctrl.OpenAdmin(), common.ErrSessionActive)
	require.ErrorIs(t, h.ctrl.OpenKeypad(ModeLogin, 8), common.ErrSessionActive)
}

func TestAdmin_WrongCode(t *testing.T) {
	h := newHarness(t)
	h.srv.Handle(http.MethodPost, "/admin/verify", func(c clienttest.Call) (int, any) {
		return http.StatusOK, map[string]any{"success": c.Body["code"] == "24682468"}
	})
	require.NoError(t, h.ctrl.OpenAdmin())
	before := h.ctrl.Snapshot()

	h.press(t, "1", "1", "1", "1")
	err := h.ctrl.PressKey(context.Background(), "enter")
	require.ErrorIs(t, err, common.ErrIncorrectAdmin)

	v := h.ctrl.Snapshot()
	assert.Equal(t, "Incorrect Admin Code", v.Alert)
	assert.True(t, v.Keypad.Open)
	assert.Equal(t, ModeAdmin, v.Keypad.Mode)
	assert.Equal(t, "", v.Keypad.Mask)
	assert.Equal(t, before.Screen, v.Screen)
	assert.Equal(t, []models.JournalKind{models.JournalAdminDenied}, h.kinds(t))
}

func TestAdmin_RightCodeOpensStocktake(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/admin/verify", http.StatusOK, map[string]any{"success": true})
	require.NoError(t, h.ctrl.OpenAdmin())

	h.press(t, "2", "4", "6", "8", "2", "4", "6", "8")
	require.NoError(t, h.ctrl.PressKey(context.Background(), "enter"))

	v := h.ctrl.Snapshot()
	assert.Equal(t, ScreenStocktake, v.Screen)
	assert.False(t, v.Keypad.Open)
	assert.Nil(t, v.Session)
	assert.Equal(t, "24682468", h.srv.Calls("/admin/verify")[0].Body["code"])
	assert.Equal(t, 0, h.clk.PendingCount(), "no idle timer without a session")
}

func TestPinButton_SetPinFlow(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/set_pin", http.StatusOK, map[string]any{"success": true})
	h.loginAlice(t)

	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), nil))
	v := h.ctrl.Snapshot()
	assert.Equal(t, KeypadView{Open: true, Mode: ModeSetPin, Title: "Create New PIN"}, v.Keypad)

	h.press(t, "4", "3", "2", "1")
	require.NoError(t, h.ctrl.PressKey(context.Background(), "enter"))

	v = h.ctrl.Snapshot()
	assert.False(t, v.Keypad.Open)
	assert.True(t, v.Session.HasPin)
	assert.Equal(t, "🔓 Remove PIN", v.PinButton.Label)
	assert.Equal(t, "PIN Set!", v.Alert)
	assert.Equal(t, map[string]any{"user_id": float64(7), "pin": "4321"}, h.srv.Calls("/set_pin")[0].Body)
}

func TestSetUserPin_TooShortNoNetworkCall(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)
	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), nil))

	h.press(t, "1", "2", "3")
	err := h.ctrl.PressKey(context.Background(), "enter")
	require.ErrorIs(t, err, common.ErrPinTooShort)

	v := h.ctrl.Snapshot()
	assert.Equal(t, "PIN must be 4 digits", v.Alert)
	assert.True(t, v.Keypad.Open)
	assert.Equal(t, 0, h.srv.CallCount("/set_pin"))
	assert.False(t, v.Session.HasPin)
}

func TestSetUserPin_ServerErrorClearsBuffer(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/set_pin", http.StatusOK, map[string]any{"success": false, "error": "PIN too common"})
	h.loginAlice(t)
	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), nil))

	h.press(t, "1", "1", "1", "1")
	require.ErrorIs(t, h.ctrl.PressKey(context.Background(), "enter"), client.ErrRejected)

	v := h.ctrl.Snapshot()
	assert.Equal(t, "Error: PIN too common", v.Alert)
	assert.True(t, v.Keypad.Open)
	assert.Equal(t, "", v.Keypad.Mask)
	assert.False(t, v.Session.HasPin)
}

func TestSetUserPin_NoSession(t *testing.T) {
	h := newHarness(t)
	require.ErrorIs(t, h.ctrl.SetUserPin(context.Background(), "1234"), common.ErrNoSession)
	assert.Equal(t, 0, h.srv.CallCount("/set_pin"))
}

func TestPinButton_RemoveNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{
		"success": true, "user_id": 8, "name": "Bob", "balance": 1, "has_pin": true,
	})
	h.srv.Reply(http.MethodPost, "/remove_pin", http.StatusOK, map[string]any{"success": true})
	require.NoError(t, h.ctrl.AttemptLogin(context.Background(), 8, "1234"))

	var prompt string
	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), func(p string) bool { prompt = p; return false }))
	assert.Equal(t, "Remove PIN?", prompt)
	assert.Equal(t, 0, h.srv.CallCount("/remove_pin"))
	assert.True(t, h.ctrl.Snapshot().Session.HasPin)

	require.NoError(t, h.ctrl.HandlePinButton(context.Background(), func(string) bool { return true }))
	v := h.ctrl.Snapshot()
	assert.False(t, v.Session.HasPin)
	assert.Equal(t, "🔒 Set PIN", v.PinButton.Label)
	assert.Equal(t, "PIN Removed.", v.Alert)
	assert.Equal(t, map[string]any{"user_id": float64(8)}, h.srv.Calls("/remove_pin")[0].Body)
}

func TestPinButton_RejectedRemovalIsSilent(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{
		"success": true, "user_id": 8, "name": "Bob", "balance": 1, "has_pin": true,
	})
	h.srv.Reply(http.MethodPost, "/remove_pin", http.StatusOK, map[string]any{"success": false})
	require.NoError(t, h.ctrl.AttemptLogin(context.Background(), 8, "1234"))

	err := h.ctrl.HandlePinButton(context.Background(), func(string) bool { return true })
	require.ErrorIs(t, err, client.ErrRejected)

	v := h.ctrl.Snapshot()
	assert.True(t, v.Session.HasPin)
	assert.Equal(t, "🔓 Remove PIN", v.PinButton.Label)
	assert.Empty(t, v.Alert)
}

func TestSubscribe_VersionsIncrease(t *testing.T) {
	h := newHarness(t)
	h.loginAlice(t)
	h.ctrl.Logout(context.Background(), ReasonManual)

	views := h.published()
	require.NotEmpty(t, views)
	for i := 1; i < len(views); i++ {
		assert.Greater(t, views[i].Version, views[i-1].Version)
	}
}

func TestDismissAlert(t *testing.T) {
	h := newHarness(t)
	h.srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{"success": false})
	_ = h.ctrl.AttemptLogin(context.Background(), 7, "")
	require.NotEmpty(t, h.ctrl.Snapshot().Alert)

	h.ctrl.DismissAlert()
	assert.Empty(t, h.ctrl.Snapshot().Alert)
}

func TestSetOnline_PublishesOnlyOnChange(t *testing.T) {
	h := newHarness(t)
	before := len(h.published())

	h.ctrl.SetOnline(true)
	h.ctrl.SetOnline(true)
	h.ctrl.SetOnline(false)

	assert.Equal(t, before+2, len(h.published()))
	assert.False(t, h.ctrl.Snapshot().Online)
}
