package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents a single signed transaction: a deposit when the
// amount is positive, a withdrawal when negative. The amount and its
// posting time travel together so the history can never lose pairing.
type Movement struct {
	Amount   decimal.Decimal `json:"amount"`
	PostedAt time.Time       `json:"posted_at"`
}

// IsDeposit reports whether the movement added money to the account.
func (m Movement) IsDeposit() bool {
	return m.Amount.IsPositive()
}

// Account represents one bank customer.
type Account struct {
	ID           string          `json:"id"`
	Owner        string          `json:"owner"`
	Username     string          `json:"username"`
	PIN          int             `json:"-"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Currency     string          `json:"currency"`
	Locale       string          `json:"locale"`
	Movements    []Movement      `json:"movements"`
}

// Balance is the signed sum of all movements. It is derived on every
// call rather than stored, so it can never drift from the history.
func (a *Account) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.Movements {
		total = total.Add(m.Amount)
	}
	return total
}

// FirstName returns the leading word of the owner's name, used in the
// welcome message.
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// DeriveUsername lowercases the owner name and joins the first rune of
// each word. "Adam Lefaivre" becomes "al". Recomputing from the same
// owner always yields the same result.
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r := []rune(word)
		b.WriteRune(r[0])
	}
	return b.String()
}
