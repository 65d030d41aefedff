package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monietree/teller/bank"
	"github.com/monietree/teller/db"
)

// Test helper functions
func setupTestModel(t *testing.T) Model {
	t.Helper()

	store, err := db.Open()
	require.NoError(t, err)
	require.NoError(t, store.Seed())
	t.Cleanup(store.Close)

	cfg := bank.Config{
		IdleTimeout:  time.Minute,
		TickInterval: 10 * time.Millisecond,
		LoanDelay:    20 * time.Millisecond,
		NoticeDelay:  20 * time.Millisecond,
	}
	return New(bank.NewService(store, cfg), cfg)
}

func loginModel(t *testing.T, m Model, username, pin string) Model {
	t.Helper()

	m.loginInputs[0].SetValue(username)
	m.loginInputs[1].SetValue(pin)
	next, _ := m.submitLogin()
	return next.(Model)
}

func TestLoginViewShowsPrompt(t *testing.T) {
	m := setupTestModel(t)
	view := m.View()
	assert.Contains(t, view, "Log in to get started")
	assert.Contains(t, view, "username")
	assert.Contains(t, view, "PIN")
}

func TestSubmitLoginSuccess(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	assert.Equal(t, screenDashboard, m.screen)
	assert.Equal(t, "Welcome back, Adam", m.notice)
	assert.NotEmpty(t, m.dateLine)
	assert.Len(t, m.statement.Rows, 8)

	// login fields were cleared on the way in
	assert.Empty(t, m.loginInputs[0].Value())
	assert.Empty(t, m.loginInputs[1].Value())

	view := m.View()
	assert.Contains(t, view, "Welcome back, Adam")
	assert.Contains(t, view, "deposit")
	assert.Contains(t, view, "withdrawal")
	assert.Contains(t, view, "Balance:")
	assert.Contains(t, view, "logged out in")
}

func TestSubmitLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		username string
		pin      string
		want     string
	}{
		{name: "wrong_pin", username: "al", pin: "4321", want: "Wrong username or password"},
		{name: "unknown_user", username: "zz", pin: "1111", want: "Wrong username or password"},
		{name: "non_numeric_pin", username: "al", pin: "one", want: "PIN can only contain numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestModel(t)
			m = loginModel(t, m, tt.username, tt.pin)

			assert.Equal(t, screenLogin, m.screen)
			assert.Equal(t, tt.want, m.notice)
			assert.Empty(t, m.loginInputs[0].Value())
			assert.Empty(t, m.loginInputs[1].Value())
		})
	}
}

func TestNoticeRestoreIgnoresStaleGeneration(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "zz", "1111") // bumps generation, schedules restore
	staleGen := m.noticeGen

	// a newer notice supersedes the pending restore
	m.setNotice("Invalid transfer request", true)

	next, _ := m.Update(restoreNoticeMsg{gen: staleGen, text: loginPrompt})
	m = next.(Model)
	assert.Equal(t, "Invalid transfer request", m.notice)

	// the matching generation restores as scheduled
	next, _ = m.Update(restoreNoticeMsg{gen: m.noticeGen, text: loginPrompt})
	m = next.(Model)
	assert.Equal(t, loginPrompt, m.notice)
}

func TestTransferFromDashboard(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	m.dashInputs[fieldTransferTo].SetValue("bn")
	m.dashInputs[fieldTransferAmount].SetValue("100")
	next, _ := m.submitTransfer()
	m = next.(Model)

	assert.Len(t, m.statement.Rows, 9)
	assert.Empty(t, m.dashInputs[fieldTransferTo].Value())
	assert.Empty(t, m.dashInputs[fieldTransferAmount].Value())
	assert.Equal(t, "Welcome back, Adam", m.notice, "successful transfer leaves the welcome line alone")
}

func TestInvalidTransferShowsNotice(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	m.dashInputs[fieldTransferTo].SetValue("al")
	m.dashInputs[fieldTransferAmount].SetValue("100")
	next, _ := m.submitTransfer()
	m = next.(Model)

	assert.Equal(t, "Invalid transfer request", m.notice)
	assert.Len(t, m.statement.Rows, 8, "failed transfer must not add rows")
}

func TestCloseAccountReturnsToLogin(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	m.dashInputs[fieldCloseUser].SetValue("al")
	m.dashInputs[fieldClosePIN].SetValue("1111")
	next, _ := m.submitClose()
	m = next.(Model)

	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, "Account closed", m.notice)
	assert.Empty(t, m.statement.Rows)
}

func TestCloseAccountWrongPIN(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	m.dashInputs[fieldCloseUser].SetValue("al")
	m.dashInputs[fieldClosePIN].SetValue("2222")
	next, _ := m.submitClose()
	m = next.(Model)

	assert.Equal(t, screenDashboard, m.screen, "failed close keeps the session")
	assert.Equal(t, "Invalid close request", m.notice)
}

func TestSessionExpiredEventResetsToLogin(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	next, _ := m.handleBankEvent(bank.Event{Kind: bank.EventSessionExpired})
	m = next.(Model)

	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, loginPrompt, m.notice)
	assert.Empty(t, m.statement.Rows)
}

func TestSortToggleKeyReordersRows(t *testing.T) {
	m := setupTestModel(t)
	m = loginModel(t, m, "al", "1111")

	unsortedTop := m.statement.Rows[0]

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Contains(t, m.statement.Rows[0].Amount, "25", "sorted view leads with the largest movement")
	assert.NotEqual(t, unsortedTop, m.statement.Rows[0])

	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Equal(t, unsortedTop, m.statement.Rows[0], "toggling twice restores the chronological order")
}
