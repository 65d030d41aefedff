package model

import "github.com/shopspring/decimal"

// interest below one unit of currency is never credited
var minInterest = decimal.NewFromInt(1)

var oneHundred = decimal.NewFromInt(100)

// Summary holds the derived totals for one account. All four values are
// recomputed from the movement history on every call to Summarize;
// nothing is cached across mutations.
type Summary struct {
	Balance       decimal.Decimal
	TotalIn       decimal.Decimal
	TotalOut      decimal.Decimal
	TotalInterest decimal.Decimal
}

// Summarize derives the balance, deposit and withdrawal totals, and the
// qualifying interest for an account. Each deposit earns interest at the
// account's rate, but a deposit whose own interest comes to less than one
// unit contributes nothing; deposits are judged one at a time, never in
// aggregate. The totals are order-insensitive over the movement history.
func Summarize(a *Account) Summary {
	s := Summary{
		Balance:       decimal.Zero,
		TotalIn:       decimal.Zero,
		TotalOut:      decimal.Zero,
		TotalInterest: decimal.Zero,
	}
	for _, m := range a.Movements {
		s.Balance = s.Balance.Add(m.Amount)
		if m.IsDeposit() {
			s.TotalIn = s.TotalIn.Add(m.Amount)
			interest := m.Amount.Mul(a.InterestRate).Div(oneHundred)
			if interest.GreaterThanOrEqual(minInterest) {
				s.TotalInterest = s.TotalInterest.Add(interest)
			}
		} else {
			s.TotalOut = s.TotalOut.Sub(m.Amount)
		}
	}
	return s
}
