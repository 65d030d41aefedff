package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/monietree/teller/model"
)

type seedAccount struct {
	owner    string
	pin      int
	rate     string
	currency string
	locale   string
	amounts  []string
	dates    []string
}

// The demo roster. Movement dates are fixed history; new movements get
// real timestamps at append time.
var seedAccounts = []seedAccount{
	{
		owner:    "Adam Lefaivre",
		pin:      1111,
		rate:     "1.2",
		currency: "USD",
		locale:   "en-US",
		amounts:  []string{"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"},
		dates: []string{
			"2020-11-18T21:31:17.178Z",
			"2020-12-23T07:42:02.383Z",
			"2021-01-28T09:15:04.904Z",
			"2021-04-01T10:17:24.185Z",
			"2021-01-08T14:11:59.604Z",
			"2021-05-19T17:01:17.194Z",
			"2021-05-20T23:36:17.929Z",
			"2021-05-21T08:51:36.790Z",
		},
	},
	{
		owner:    "Blake Nelson",
		pin:      2222,
		rate:     "1.5",
		currency: "EUR",
		locale:   "pt-PT",
		amounts:  []string{"5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"},
		dates: []string{
			"2020-11-01T13:15:33.035Z",
			"2020-11-30T09:48:16.867Z",
			"2020-12-25T06:04:23.907Z",
			"2021-01-25T14:18:46.235Z",
			"2021-02-05T16:33:06.386Z",
			"2021-04-10T14:43:26.374Z",
			"2021-05-20T18:49:59.371Z",
			"2021-04-26T12:01:20.894Z",
		},
	},
}

// Seed inserts the demo accounts. Each account gets a generated unique
// ID; the username is derived from the owner's initials exactly once,
// here, before any login is possible.
func (s *Store) Seed() error {
	for _, sa := range seedAccounts {
		rate, err := decimal.NewFromString(sa.rate)
		if err != nil {
			return err
		}
		acc := &model.Account{
			ID:           uuid.New().String(),
			Owner:        sa.owner,
			Username:     model.DeriveUsername(sa.owner),
			PIN:          sa.pin,
			InterestRate: rate,
			Currency:     sa.currency,
			Locale:       sa.locale,
		}
		for i, raw := range sa.amounts {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return err
			}
			posted, err := time.Parse(time.RFC3339, sa.dates[i])
			if err != nil {
				return err
			}
			acc.Movements = append(acc.Movements, model.Movement{Amount: amount, PostedAt: posted})
		}
		if err := s.PutAccount(acc); err != nil {
			return err
		}
	}
	return nil
}
