// Package session tracks who is logged in and for how long they may
// stay idle.
package session

import (
	"time"

	"github.com/monietree/teller/model"
)

// Session is the state held between a successful login and logout,
// timeout or account closure. Exactly one account is current for its
// lifetime.
type Session struct {
	Account   *model.Account
	StartedAt time.Time
	Sorted    bool
}

// New opens a session for an account.
func New(acc *model.Account, now time.Time) *Session {
	return &Session{Account: acc, StartedAt: now}
}
