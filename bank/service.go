// Package bank implements the action handlers behind the teller UI:
// login, transfer, loan, account closure and the sort toggle, plus the
// idle-logout timer and the deferred loan grants they coordinate.
package bank

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/monietree/teller/db"
	"github.com/monietree/teller/session"
)

// EventKind discriminates the asynchronous events a Service emits.
type EventKind int

const (
	// EventSessionExpired fires when the idle countdown runs out and
	// the session is closed.
	EventSessionExpired EventKind = iota
	// EventLoanGranted fires when a deferred loan lands on the account.
	EventLoanGranted
)

// Event is delivered on the Events channel for the UI to react to.
type Event struct {
	Kind   EventKind
	Amount decimal.Decimal
}

type transferRequest struct {
	To     string `validate:"required"`
	Amount string `validate:"required,numeric"`
}

type loanRequest struct {
	Amount string `validate:"required,numeric"`
}

// Service owns the account store, the current session and the timers.
// All methods are safe for concurrent use; the scheduled callbacks
// (idle expiry, loan grants) take the same lock as the handlers, so a
// grant never interleaves with a half-applied mutation.
type Service struct {
	mu       sync.Mutex
	store    *db.Store
	cfg      Config
	validate *validator.Validate
	now      func() time.Time

	sess   *session.Session
	idle   *session.IdleTimer
	loans  *loanScheduler
	events chan Event
}

// NewService wires a service over the store with the given timings.
func NewService(store *db.Store, cfg Config) *Service {
	s := &Service{
		store:    store,
		cfg:      cfg.withDefaults(),
		validate: validator.New(),
		now:      time.Now,
		loans:    newLoanScheduler(),
		events:   make(chan Event, 8),
	}
	s.idle = session.NewIdleTimer(s.cfg.IdleTimeout, s.cfg.TickInterval, nil, s.expire)
	return s
}

// Events delivers session-expiry and loan-grant notifications. Events
// are dropped rather than blocking when nobody is listening.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Current returns a copy of the active session, or nil when logged
// out. Callers read the copy without holding the service lock; the
// live session is only ever touched under it.
func (s *Service) Current() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Remaining is the time left on the idle countdown.
func (s *Service) Remaining() time.Duration {
	return s.idle.Remaining()
}

// Touch resets the idle countdown. Called on any qualifying user
// activity while a session is active; a no-op otherwise.
func (s *Service) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess != nil {
		s.idle.Reset()
	}
}

// Login opens a session for the account matching username and pin. The
// pin must parse as a number before it is ever compared.
func (s *Service) Login(username, pin string) (*session.Session, error) {
	pinValue, err := parsePIN(pin)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.store.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, db.ErrAccountNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}
	if float64(acc.PIN) != pinValue {
		return nil, ErrWrongCredentials
	}

	s.loans.cancelAll()
	s.sess = session.New(acc, s.now())
	s.idle.Start()
	return s.snapshotLocked(), nil
}

// Logout ends the session: the countdown stops and pending loan grants
// are cancelled.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endSessionLocked()
}

// Transfer moves amount from the current account to the account whose
// username is to. Both sides gain one movement stamped with the same
// instant, written as a single transaction. Any failure, validation or
// storage, leaves both accounts untouched.
func (s *Service) Transfer(to, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return ErrNoSession
	}
	req := transferRequest{To: strings.TrimSpace(to), Amount: strings.TrimSpace(amount)}
	if err := s.validate.Struct(req); err != nil {
		return ErrInvalidTransfer
	}
	amt, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ErrInvalidTransfer
	}

	cur := s.sess.Account
	receiver, err := s.store.GetByUsername(req.To)
	if err != nil {
		if errors.Is(err, db.ErrAccountNotFound) {
			return ErrInvalidTransfer
		}
		return err
	}
	if !amt.IsPositive() || receiver.ID == cur.ID || cur.Balance().LessThan(amt) {
		return ErrInvalidTransfer
	}

	if err := s.store.Transfer(cur.ID, receiver.ID, amt, s.now()); err != nil {
		return err
	}
	if err := s.reloadLocked(); err != nil {
		return err
	}
	s.idle.Reset()
	return nil
}

// RequestLoan queues a loan of the requested amount, truncated to a
// whole number. The bank requires collateral: some existing movement
// must be at least a tenth of the request. The grant lands after the
// configured processing delay and is cancelled if the account closes or
// the session ends first.
func (s *Service) RequestLoan(amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return ErrNoSession
	}
	req := loanRequest{Amount: strings.TrimSpace(amount)}
	if err := s.validate.Struct(req); err != nil {
		return ErrInvalidLoan
	}
	parsed, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ErrInvalidLoan
	}
	request := parsed.Floor()
	if !request.IsPositive() {
		return ErrInvalidLoan
	}

	tenth := request.Div(decimal.NewFromInt(10))
	qualified := false
	for _, m := range s.sess.Account.Movements {
		if m.Amount.GreaterThanOrEqual(tenth) {
			qualified = true
			break
		}
	}
	if !qualified {
		return ErrInvalidLoan
	}

	s.idle.Reset()
	accountID := s.sess.Account.ID
	s.loans.schedule(accountID, s.cfg.LoanDelay, func() {
		s.grantLoan(accountID, request)
	})
	return nil
}

// CloseAccount removes the current account from the store. The typed
// username and pin must both match the logged-in account; the pin must
// be numeric before any comparison, as at login.
func (s *Service) CloseAccount(username, pin string) error {
	pinValue, err := parsePIN(pin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil {
		return ErrNoSession
	}
	cur := s.sess.Account
	if strings.TrimSpace(username) != cur.Username || float64(cur.PIN) != pinValue {
		return ErrInvalidClose
	}

	// drop this account's pending grants before its record goes away
	s.loans.cancelAccount(cur.ID)
	if err := s.store.DeleteAccount(cur.ID); err != nil {
		return err
	}
	s.endSessionLocked()
	return nil
}

// ToggleSort flips the display ordering and returns the new value:
// true sorts movements ascending by amount, false restores the
// chronological order.
func (s *Service) ToggleSort() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return false, ErrNoSession
	}
	s.sess.Sorted = !s.sess.Sorted
	return s.sess.Sorted, nil
}

// Statement builds the display rows and summary for the current
// session's account. Read-only.
func (s *Service) Statement() (Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return Statement{}, ErrNoSession
	}
	return BuildStatement(s.sess.Account, s.sess.Sorted, s.now()), nil
}

// grantLoan applies a matured loan. The scheduler already drops grants
// for closed accounts and ended sessions; the session check here guards
// the gap between login changes.
func (s *Service) grantLoan(accountID string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil || s.sess.Account.ID != accountID {
		return
	}
	if err := s.store.AppendMovement(accountID, amount, s.now()); err != nil {
		return
	}
	if err := s.reloadLocked(); err != nil {
		return
	}
	s.emit(Event{Kind: EventLoanGranted, Amount: amount})
}

// expire runs when the idle countdown reaches zero.
func (s *Service) expire() {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return
	}
	s.loans.cancelAll()
	s.sess = nil
	s.mu.Unlock()
	s.emit(Event{Kind: EventSessionExpired})
}

// endSessionLocked tears the session down from a handler path. Caller
// holds s.mu.
func (s *Service) endSessionLocked() {
	s.loans.cancelAll()
	s.idle.Stop()
	s.sess = nil
}

// snapshotLocked copies the session header so callers never see the
// struct the handlers rewrite. Sharing the account pointer is fine:
// mutations swap in a freshly loaded account, they never edit one in
// place. Caller holds s.mu.
func (s *Service) snapshotLocked() *session.Session {
	if s.sess == nil {
		return nil
	}
	cp := *s.sess
	return &cp
}

// reloadLocked refreshes the session's account from the store after a
// mutation. Caller holds s.mu.
func (s *Service) reloadLocked() error {
	acc, err := s.store.GetByID(s.sess.Account.ID)
	if err != nil {
		return err
	}
	s.sess.Account = acc
	return nil
}

func (s *Service) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// parsePIN accepts any finite numeric input; everything else is the
// fixed pin-format failure.
func parsePIN(pin string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(pin), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrPINNotNumeric
	}
	return v, nil
}
