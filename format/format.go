// Package format renders amounts, dates and countdowns for display.
// Currency output goes through golang.org/x/text so each account keeps
// its own locale conventions for symbols and separators.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// calendar date layouts per locale; x/text has no date renderer
var dateLayouts = map[string]string{
	"en-US": "1/2/2006",
	"en-GB": "02/01/2006",
	"pt-PT": "02/01/2006",
	"de-DE": "2.1.2006",
	"fr-FR": "02/01/2006",
}

// date plus hour and minute, shown in the dashboard header
var dateTimeLayouts = map[string]string{
	"en-US": "1/2/2006, 3:04 PM",
	"en-GB": "02/01/2006, 15:04",
	"pt-PT": "02/01/2006, 15:04",
	"de-DE": "2.1.2006, 15:04",
	"fr-FR": "02/01/2006, 15:04",
}

func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Currency formats an amount per the locale's conventions with the
// currency's symbol. Unknown ISO codes fall back to a plain fixed-point
// rendering with the code appended.
func Currency(amount decimal.Decimal, locale, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}
	f, _ := amount.Float64()
	return printer(locale).Sprintf("%v", currency.Symbol(unit.Amount(f)))
}

// MovementDate renders a movement timestamp relative to now: "Today",
// "Yesterday", "N days ago" up to a week, then the locale's calendar
// date. Days passed is the rounded whole-day distance, sign ignored.
func MovementDate(ts time.Time, locale string, now time.Time) string {
	days := int(math.Round(math.Abs(now.Sub(ts).Hours() / 24)))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	}
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = "2006-01-02"
	}
	return ts.Format(layout)
}

// LoginDate renders the current date and time for the dashboard header.
func LoginDate(ts time.Time, locale string) string {
	layout, ok := dateTimeLayouts[locale]
	if !ok {
		layout = "2006-01-02 15:04"
	}
	return ts.Format(layout)
}

// Countdown renders a remaining duration as zero-padded mm:ss.
func Countdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
