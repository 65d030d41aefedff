package bank

import (
	"sort"
	"time"

	"github.com/monietree/teller/format"
	"github.com/monietree/teller/model"
)

// Row is one rendered movement line.
type Row struct {
	// Position is the 1-based index of the movement in the iteration
	// order (chronological, or ascending by amount when sorted).
	Position int
	// Kind is "deposit" or "withdrawal".
	Kind string
	// Date is the relative or calendar date for the movement.
	Date string
	// Amount is the locale-formatted signed amount.
	Amount string
}

// Statement is the complete view model for one account: the movement
// rows in display order (first row at the top) and the formatted
// balance and summary totals. Building one never mutates the account.
type Statement struct {
	Rows     []Row
	Balance  string
	In       string
	Out      string
	Interest string
}

// BuildStatement renders an account's history. Unsorted output shows
// the most recent movement first; sorted output orders by amount,
// largest first, using a stable sort. Every row keeps its own posting
// date regardless of ordering.
func BuildStatement(acc *model.Account, sorted bool, now time.Time) Statement {
	moves := make([]model.Movement, len(acc.Movements))
	copy(moves, acc.Movements)
	if sorted {
		sort.SliceStable(moves, func(i, j int) bool {
			return moves[i].Amount.LessThan(moves[j].Amount)
		})
	}

	rows := make([]Row, 0, len(moves))
	for i, m := range moves {
		kind := "withdrawal"
		if m.IsDeposit() {
			kind = "deposit"
		}
		rows = append(rows, Row{
			Position: i + 1,
			Kind:     kind,
			Date:     format.MovementDate(m.PostedAt, acc.Locale, now),
			Amount:   format.Currency(m.Amount, acc.Locale, acc.Currency),
		})
	}
	// rows were built in iteration order; the display stacks each new
	// row on top, so reverse for top-down rendering
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	summary := model.Summarize(acc)
	return Statement{
		Rows:     rows,
		Balance:  format.Currency(summary.Balance, acc.Locale, acc.Currency),
		In:       format.Currency(summary.TotalIn, acc.Locale, acc.Currency),
		Out:      format.Currency(summary.TotalOut, acc.Locale, acc.Currency),
		Interest: format.Currency(summary.TotalInterest, acc.Locale, acc.Currency),
	}
}
