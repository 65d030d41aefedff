// Package tui is the terminal front end: a login screen and a
// dashboard showing the movement list, balance, summaries, the idle
// countdown and the transfer, loan and close forms.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/monietree/teller/bank"
	"github.com/monietree/teller/format"
)

const loginPrompt = "Log in to get started"

type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

// dashboard input indexes
const (
	fieldTransferTo = iota
	fieldTransferAmount
	fieldLoanAmount
	fieldCloseUser
	fieldClosePIN
	dashboardFields
)

type tickMsg time.Time

// restoreNoticeMsg puts a deferred message on the notice line; stale
// generations are ignored so an old restore never clobbers a newer
// notice.
type restoreNoticeMsg struct {
	gen  int
	text string
}

type bankEventMsg bank.Event

// Model is the bubbletea state for the whole program.
type Model struct {
	svc    *bank.Service
	cfg    bank.Config
	styles Styles

	screen    screen
	notice    string
	noticeErr bool
	noticeGen int
	dateLine  string
	countdown string
	statement bank.Statement
	width     int

	loginInputs [2]textinput.Model
	dashInputs  [dashboardFields]textinput.Model
	focus       int
}

// New builds the initial model over a service.
func New(svc *bank.Service, cfg bank.Config) Model {
	m := Model{
		svc:    svc,
		cfg:    cfg,
		styles: defaultStyles(),
		screen: screenLogin,
		notice: loginPrompt,
	}

	user := textinput.New()
	user.Placeholder = "user"
	user.CharLimit = 24
	user.Width = 12
	pin := textinput.New()
	pin.Placeholder = "PIN"
	pin.CharLimit = 12
	pin.Width = 12
	pin.EchoMode = textinput.EchoPassword
	m.loginInputs[0] = user
	m.loginInputs[1] = pin

	to := textinput.New()
	to.Placeholder = "transfer to"
	to.CharLimit = 24
	to.Width = 14
	amount := textinput.New()
	amount.Placeholder = "amount"
	amount.CharLimit = 16
	amount.Width = 14
	loan := textinput.New()
	loan.Placeholder = "loan amount"
	loan.CharLimit = 16
	loan.Width = 14
	closeUser := textinput.New()
	closeUser.Placeholder = "confirm user"
	closeUser.CharLimit = 24
	closeUser.Width = 14
	closePIN := textinput.New()
	closePIN.Placeholder = "confirm PIN"
	closePIN.CharLimit = 12
	closePIN.Width = 14
	closePIN.EchoMode = textinput.EchoPassword
	m.dashInputs[fieldTransferTo] = to
	m.dashInputs[fieldTransferAmount] = amount
	m.dashInputs[fieldLoanAmount] = loan
	m.dashInputs[fieldCloseUser] = closeUser
	m.dashInputs[fieldClosePIN] = closePIN

	m.focusField(0)
	return m
}

// Run starts the program on the alternate screen with mouse reporting
// enabled; pointer movement counts as activity for the idle timer.
func Run(svc *bank.Service, cfg bank.Config) error {
	p := tea.NewProgram(New(svc, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd(), m.waitForEvent())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForEvent() tea.Cmd {
	ch := m.svc.Events()
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return bankEventMsg(e)
	}
}

func (m *Model) restoreNoticeCmd(text string) tea.Cmd {
	m.noticeGen++
	gen := m.noticeGen
	return tea.Tick(m.cfg.NoticeDelay, func(time.Time) tea.Msg {
		return restoreNoticeMsg{gen: gen, text: text}
	})
}

func (m *Model) setNotice(text string, isErr bool) {
	m.noticeGen++
	m.notice = text
	m.noticeErr = isErr
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.svc.Touch()
		return m, nil

	case tickMsg:
		m.countdown = format.Countdown(m.svc.Remaining())
		if m.screen == screenDashboard {
			m.refreshStatement()
		}
		return m, m.tickCmd()

	case restoreNoticeMsg:
		if msg.gen == m.noticeGen {
			m.notice = msg.text
			m.noticeErr = false
		}
		return m, nil

	case bankEventMsg:
		return m.handleBankEvent(bank.Event(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleBankEvent(e bank.Event) (tea.Model, tea.Cmd) {
	switch e.Kind {
	case bank.EventSessionExpired:
		m.resetToLogin(loginPrompt)
	case bank.EventLoanGranted:
		m.refreshStatement()
	}
	return m, m.waitForEvent()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenDashboard {
		// any keystroke is user activity
		m.svc.Touch()
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		forward := msg.String() == "tab" || msg.String() == "down"
		m.cycleFocus(forward)
		return m, nil

	case "ctrl+s":
		if m.screen == screenDashboard {
			if _, err := m.svc.ToggleSort(); err == nil {
				m.refreshStatement()
			}
		}
		return m, nil

	case "enter":
		return m.submit()
	}

	return m.updateInputs(msg)
}

// submit runs the action for the form that currently has focus.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.screen == screenLogin {
		return m.submitLogin()
	}
	switch m.focus {
	case fieldTransferTo, fieldTransferAmount:
		return m.submitTransfer()
	case fieldLoanAmount:
		return m.submitLoan()
	default:
		return m.submitClose()
	}
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	username := m.loginInputs[0].Value()
	pin := m.loginInputs[1].Value()
	m.loginInputs[0].SetValue("")
	m.loginInputs[1].SetValue("")

	sess, err := m.svc.Login(username, pin)
	if err != nil {
		switch {
		case errors.Is(err, bank.ErrPINNotNumeric):
			m.setNotice("PIN can only contain numbers", true)
		case errors.Is(err, bank.ErrWrongCredentials):
			m.setNotice("Wrong username or password", true)
		default:
			m.setNotice(err.Error(), true)
		}
		m.focusField(0)
		return m, m.restoreNoticeCmd(loginPrompt)
	}

	acc := sess.Account
	m.screen = screenDashboard
	m.setNotice("Welcome back, "+acc.FirstName(), false)
	m.dateLine = format.LoginDate(time.Now(), acc.Locale)
	m.countdown = format.Countdown(m.svc.Remaining())
	m.refreshStatement()
	m.focusField(fieldTransferTo)
	return m, nil
}

func (m Model) submitTransfer() (tea.Model, tea.Cmd) {
	to := m.dashInputs[fieldTransferTo].Value()
	amount := m.dashInputs[fieldTransferAmount].Value()
	m.dashInputs[fieldTransferTo].SetValue("")
	m.dashInputs[fieldTransferAmount].SetValue("")

	err := m.svc.Transfer(to, amount)
	switch {
	case err == nil:
		m.refreshStatement()
		return m, nil
	case errors.Is(err, bank.ErrNoSession):
		return m, nil
	default:
		m.setNotice("Invalid transfer request", true)
		return m, m.restoreNoticeCmd(m.welcomeText())
	}
}

func (m Model) submitLoan() (tea.Model, tea.Cmd) {
	amount := m.dashInputs[fieldLoanAmount].Value()
	m.dashInputs[fieldLoanAmount].SetValue("")

	err := m.svc.RequestLoan(amount)
	switch {
	case err == nil, errors.Is(err, bank.ErrNoSession):
		return m, nil
	default:
		m.setNotice("Invalid loan request", true)
		return m, m.restoreNoticeCmd(m.welcomeText())
	}
}

func (m Model) submitClose() (tea.Model, tea.Cmd) {
	username := m.dashInputs[fieldCloseUser].Value()
	pin := m.dashInputs[fieldClosePIN].Value()
	m.dashInputs[fieldCloseUser].SetValue("")
	m.dashInputs[fieldClosePIN].SetValue("")

	err := m.svc.CloseAccount(username, pin)
	switch {
	case err == nil:
		m.resetToLogin("Account closed")
		return m, m.restoreNoticeCmd(loginPrompt)
	case errors.Is(err, bank.ErrNoSession):
		return m, nil
	case errors.Is(err, bank.ErrPINNotNumeric):
		m.setNotice("PIN can only contain numbers", true)
		return m, m.restoreNoticeCmd(m.welcomeText())
	default:
		m.setNotice("Invalid close request", true)
		return m, m.restoreNoticeCmd(m.welcomeText())
	}
}

// welcomeText rebuilds the welcome line for delayed restores while a
// session is still open.
func (m Model) welcomeText() string {
	sess := m.svc.Current()
	if sess == nil {
		return loginPrompt
	}
	return "Welcome back, " + sess.Account.FirstName()
}

func (m *Model) refreshStatement() {
	st, err := m.svc.Statement()
	if err != nil {
		return
	}
	m.statement = st
}

func (m *Model) resetToLogin(notice string) {
	m.screen = screenLogin
	m.setNotice(notice, false)
	m.statement = bank.Statement{}
	m.dateLine = ""
	m.countdown = ""
	for i := range m.dashInputs {
		m.dashInputs[i].SetValue("")
	}
	m.focusField(0)
}

func (m *Model) cycleFocus(forward bool) {
	n := len(m.loginInputs)
	if m.screen == screenDashboard {
		n = dashboardFields
	}
	if forward {
		m.focusField((m.focus + 1) % n)
	} else {
		m.focusField((m.focus + n - 1) % n)
	}
}

func (m *Model) focusField(i int) {
	m.focus = i
	for j := range m.loginInputs {
		m.loginInputs[j].Blur()
	}
	for j := range m.dashInputs {
		m.dashInputs[j].Blur()
	}
	if m.screen == screenLogin {
		m.loginInputs[i].Focus()
	} else {
		m.dashInputs[i].Focus()
	}
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.loginInputs)+len(m.dashInputs))
	var cmd tea.Cmd
	if m.screen == screenLogin {
		for i := range m.loginInputs {
			m.loginInputs[i], cmd = m.loginInputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	} else {
		for i := range m.dashInputs {
			m.dashInputs[i], cmd = m.dashInputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}
