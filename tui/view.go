package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.screen == screenLogin {
		return m.loginView()
	}
	return m.dashboardView()
}

func (m Model) loginView() string {
	notice := m.styles.Notice
	if m.noticeErr {
		notice = m.styles.ErrNotice
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("teller") + "\n\n")
	b.WriteString(notice.Render(m.notice) + "\n\n")
	b.WriteString(m.styles.FormLabel.Render("username ") + m.loginInputs[0].View() + "\n")
	b.WriteString(m.styles.FormLabel.Render("PIN      ") + m.loginInputs[1].View() + "\n\n")
	b.WriteString(m.styles.Help.Render("tab: next field ⋅ enter: log in ⋅ ctrl+c: quit"))
	return b.String()
}

func (m Model) dashboardView() string {
	notice := m.styles.Notice
	if m.noticeErr {
		notice = m.styles.ErrNotice
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		notice.Render(m.notice),
		m.styles.DateLine.Render(m.dateLine),
	)

	rows := make([]string, 0, len(m.statement.Rows))
	for _, row := range m.statement.Rows {
		kind := m.styles.Deposit
		if row.Kind == "withdrawal" {
			kind = m.styles.Withdrawal
		}
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			kind.Render(fmt.Sprintf("%2d %-10s", row.Position, row.Kind)),
			m.styles.RowDate.Render(fmt.Sprintf("%-12s", row.Date)),
			row.Amount,
		))
	}
	if len(rows) == 0 {
		rows = append(rows, m.styles.Help.Render("no movements"))
	}
	movements := m.styles.Movements.Render(strings.Join(rows, "\n"))

	balance := m.styles.Balance.Render("Balance: " + m.statement.Balance)
	summary := m.styles.Summary.Render(fmt.Sprintf("In: %s ⋅ Out: %s ⋅ Interest: %s",
		m.statement.In, m.statement.Out, m.statement.Interest))

	forms := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.FormLabel.Render("Transfer money"),
		"  "+m.dashInputs[fieldTransferTo].View()+"  "+m.dashInputs[fieldTransferAmount].View(),
		m.styles.FormLabel.Render("Request loan"),
		"  "+m.dashInputs[fieldLoanAmount].View(),
		m.styles.FormLabel.Render("Close account"),
		"  "+m.dashInputs[fieldCloseUser].View()+"  "+m.dashInputs[fieldClosePIN].View(),
	)

	timer := m.styles.Timer.Render("You will be logged out in " + m.countdown)
	help := m.styles.Help.Render("tab: next field ⋅ enter: submit ⋅ ctrl+s: sort ⋅ ctrl+c: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", movements, balance, summary, "", forms, "", timer, help,
	)
}
