package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func testAccount(t *testing.T) *Account {
	t.Helper()

	amounts := []string{"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"}
	base := time.Date(2020, 11, 18, 21, 31, 17, 0, time.UTC)

	acc := &Account{
		ID:           "acc_test_1",
		Owner:        "Adam Lefaivre",
		Username:     "al",
		PIN:          1111,
		InterestRate: decimal.NewFromFloat(1.2),
		Currency:     "USD",
		Locale:       "en-US",
	}
	for i, raw := range amounts {
		amt, err := decimal.NewFromString(raw)
		require.NoError(t, err)
		acc.Movements = append(acc.Movements, Movement{
			Amount:   amt,
			PostedAt: base.AddDate(0, 0, i*30),
		})
	}
	return acc
}

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		want  string
	}{
		{name: "two_words", owner: "Adam Lefaivre", want: "al"},
		{name: "three_words", owner: "Sarah Jane Smith", want: "sjs"},
		{name: "single_word", owner: "Cher", want: "c"},
		{name: "mixed_case", owner: "bLAKE nELSON", want: "bn"},
		{name: "extra_whitespace", owner: "  Blake   Nelson  ", want: "bn"},
		{name: "empty", owner: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveUsername(tt.owner)
			assert.Equal(t, tt.want, got)

			// deriving again from the same owner must not change anything
			assert.Equal(t, got, DeriveUsername(tt.owner))
		})
	}
}

func TestAccountBalance(t *testing.T) {
	acc := testAccount(t)

	want := decimal.Zero
	for _, m := range acc.Movements {
		want = want.Add(m.Amount)
	}
	assert.True(t, acc.Balance().Equal(want), "balance must equal the sum of movements")

	// balance follows every mutation
	acc.Movements = append(acc.Movements, Movement{
		Amount:   decimal.NewFromInt(-50),
		PostedAt: time.Now(),
	})
	assert.True(t, acc.Balance().Equal(want.Sub(decimal.NewFromInt(50))))
}

func TestAccountFirstName(t *testing.T) {
	acc := testAccount(t)
	assert.Equal(t, "Adam", acc.FirstName())

	empty := &Account{Owner: ""}
	assert.Equal(t, "", empty.FirstName())
}

func TestSummarize(t *testing.T) {
	acc := testAccount(t)
	s := Summarize(acc)

	assert.Equal(t, "25952.59", s.Balance.String())
	assert.Equal(t, "27035.2", s.TotalIn.String())
	assert.Equal(t, "1082.61", s.TotalOut.String())

	// per-movement qualifying interest at 1.2%:
	// 200 -> 2.4, 455.23 -> 5.46276, 25000 -> 300, 1300 -> 15.6 all qualify,
	// 79.97 -> 0.95964 is below one unit and is dropped.
	assert.Equal(t, "323.46276", s.TotalInterest.String())
}

func TestSummarizeSubUnitInterestExcludedPerMovement(t *testing.T) {
	// three deposits each earning 0.5 of interest: together they would
	// cross the threshold, but each is judged on its own.
	acc := &Account{InterestRate: decimal.NewFromInt(1)}
	for i := 0; i < 3; i++ {
		acc.Movements = append(acc.Movements, Movement{
			Amount:   decimal.NewFromInt(50),
			PostedAt: time.Now(),
		})
	}

	s := Summarize(acc)
	assert.True(t, s.TotalInterest.IsZero(), "sub-unit interest must not aggregate")
	assert.Equal(t, "150", s.TotalIn.String())
}

func TestSummarizeOrderIndependent(t *testing.T) {
	acc := testAccount(t)
	want := Summarize(acc)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(acc.Movements), func(a, b int) {
			acc.Movements[a], acc.Movements[b] = acc.Movements[b], acc.Movements[a]
		})
		got := Summarize(acc)
		assert.True(t, got.Balance.Equal(want.Balance))
		assert.True(t, got.TotalIn.Equal(want.TotalIn))
		assert.True(t, got.TotalOut.Equal(want.TotalOut))
		assert.True(t, got.TotalInterest.Equal(want.TotalInterest))
	}
}

func TestSummarizeEmptyAccount(t *testing.T) {
	s := Summarize(&Account{InterestRate: decimal.NewFromFloat(1.5)})
	assert.True(t, s.Balance.IsZero())
	assert.True(t, s.TotalIn.IsZero())
	assert.True(t, s.TotalOut.IsZero())
	assert.True(t, s.TotalInterest.IsZero())
}
