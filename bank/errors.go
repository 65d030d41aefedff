package bank

import "errors"

// Every failure a handler can surface is a user-input problem, never a
// fault of the process. Handlers validate fully before mutating, so a
// returned error always means nothing changed.
var (
	// ErrPINNotNumeric is returned before any comparison when a PIN
	// field does not parse as a number.
	ErrPINNotNumeric = errors.New("pin can only contain numbers")

	// ErrWrongCredentials covers both unknown usernames and wrong PINs
	// at login.
	ErrWrongCredentials = errors.New("wrong username or password")

	// ErrInvalidTransfer covers non-positive amounts, unknown or self
	// recipients, and transfers exceeding the balance.
	ErrInvalidTransfer = errors.New("invalid transfer request")

	// ErrInvalidLoan covers non-positive requests and requests with no
	// qualifying collateral movement.
	ErrInvalidLoan = errors.New("invalid loan request")

	// ErrInvalidClose is returned when the close form's username or PIN
	// does not match the current session's account.
	ErrInvalidClose = errors.New("invalid close request")

	// ErrNoSession is returned by every handler except login when
	// nobody is logged in.
	ErrNoSession = errors.New("no active session")
)
