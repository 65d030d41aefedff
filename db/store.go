package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/monietree/teller/model"
)

const accountTable = "ACCOUNT"
const movementTable = "MOVEMENT"

// ErrAccountNotFound is returned by lookups that match no account.
var ErrAccountNotFound = errors.New("account not found")

const schema = `
CREATE TABLE IF NOT EXISTS ACCOUNT (
	ID TEXT PRIMARY KEY,
	OWNER TEXT NOT NULL,
	USERNAME TEXT NOT NULL,
	PIN INTEGER NOT NULL,
	INTEREST_RATE TEXT NOT NULL,
	CURRENCY TEXT NOT NULL,
	LOCALE TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS MOVEMENT (
	ACCOUNT_ID TEXT NOT NULL,
	SEQ INTEGER NOT NULL,
	AMOUNT TEXT NOT NULL,
	POSTED_AT TIMESTAMP NOT NULL,
	PRIMARY KEY (ACCOUNT_ID, SEQ),
	FOREIGN KEY (ACCOUNT_ID) REFERENCES ACCOUNT(ID)
);

CREATE INDEX IF NOT EXISTS idx_movement_account_id ON MOVEMENT(ACCOUNT_ID);
`

// Store keeps the account roster and movement histories in an
// in-memory SQLite database. State lives only as long as the process;
// nothing survives a restart.
type Store struct {
	db *sqlx.DB
}

// Open connects a fresh in-memory database and creates the schema.
// Foreign keys are enforced, so a movement can never reference an
// account that is not there.
func Open() (*Store, error) {
	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database; pin the pool
	// to one so all queries see the same state
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

type accountRow struct {
	ID           string `db:"ID"`
	Owner        string `db:"OWNER"`
	Username     string `db:"USERNAME"`
	PIN          int    `db:"PIN"`
	InterestRate string `db:"INTEREST_RATE"`
	Currency     string `db:"CURRENCY"`
	Locale       string `db:"LOCALE"`
}

type movementRow struct {
	AccountID string    `db:"ACCOUNT_ID"`
	Seq       int       `db:"SEQ"`
	Amount    string    `db:"AMOUNT"`
	PostedAt  time.Time `db:"POSTED_AT"`
}

// PutAccount inserts an account and its full movement history.
func (s *Store) PutAccount(acc *model.Account) error {
	query := fmt.Sprintf("INSERT INTO %s (ID, OWNER, USERNAME, PIN, INTEREST_RATE, CURRENCY, LOCALE) VALUES (?, ?, ?, ?, ?, ?, ?)", accountTable)
	_, err := s.db.Exec(query, acc.ID, acc.Owner, acc.Username, acc.PIN, acc.InterestRate.String(), acc.Currency, acc.Locale)
	if err != nil {
		return err
	}
	for _, m := range acc.Movements {
		if err := s.AppendMovement(acc.ID, m.Amount, m.PostedAt); err != nil {
			return err
		}
	}
	return nil
}

// AppendMovement adds one movement to the end of an account's history.
// The sequence number continues from the last row, so load order always
// matches append order.
func (s *Store) AppendMovement(accountID string, amount decimal.Decimal, postedAt time.Time) error {
	return appendMovement(s.db, accountID, amount, postedAt)
}

func appendMovement(q sqlx.Ext, accountID string, amount decimal.Decimal, postedAt time.Time) error {
	var next int
	query := fmt.Sprintf("SELECT COALESCE(MAX(SEQ), 0) + 1 FROM %s WHERE ACCOUNT_ID = ?", movementTable)
	if err := sqlx.Get(q, &next, query, accountID); err != nil {
		return err
	}
	query = fmt.Sprintf("INSERT INTO %s (ACCOUNT_ID, SEQ, AMOUNT, POSTED_AT) VALUES (?, ?, ?, ?)", movementTable)
	_, err := q.Exec(query, accountID, next, amount.String(), postedAt)
	return err
}

// Transfer appends the debit to one account and the matching credit to
// the other inside a single transaction, both stamped with postedAt.
// If either side fails, neither history changes.
func (s *Store) Transfer(fromID, toID string, amount decimal.Decimal, postedAt time.Time) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	if err := appendMovement(tx, fromID, amount.Neg(), postedAt); err != nil {
		tx.Rollback()
		return err
	}
	if err := appendMovement(tx, toID, amount, postedAt); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetByUsername returns the first account whose username matches, with
// its movements loaded in chronological append order.
func (s *Store) GetByUsername(username string) (*model.Account, error) {
	var row accountRow
	query := fmt.Sprintf("SELECT * FROM %s WHERE USERNAME = ? ORDER BY ROWID LIMIT 1", accountTable)
	if err := s.db.Get(&row, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.hydrate(row)
}

// GetByID returns the account with the given ID, movements included.
func (s *Store) GetByID(id string) (*model.Account, error) {
	var row accountRow
	query := fmt.Sprintf("SELECT * FROM %s WHERE ID = ?", accountTable)
	if err := s.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.hydrate(row)
}

// ListAccounts returns every account in insertion order.
func (s *Store) ListAccounts() ([]*model.Account, error) {
	var rows []accountRow
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY ROWID", accountTable)
	if err := s.db.Select(&rows, query); err != nil {
		return nil, err
	}
	accounts := make([]*model.Account, 0, len(rows))
	for _, row := range rows {
		acc, err := s.hydrate(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// AccountExists reports whether an account with the ID is present.
func (s *Store) AccountExists(id string) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE ID = ?", accountTable)
	if err := s.db.Get(&count, query, id); err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAccount removes an account and its movements.
func (s *Store) DeleteAccount(id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE ACCOUNT_ID = ?", movementTable)
	if _, err := s.db.Exec(query, id); err != nil {
		return err
	}
	query = fmt.Sprintf("DELETE FROM %s WHERE ID = ?", accountTable)
	res, err := s.db.Exec(query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *Store) hydrate(row accountRow) (*model.Account, error) {
	rate, err := decimal.NewFromString(row.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("bad interest rate for account %s: %w", row.ID, err)
	}
	acc := &model.Account{
		ID:           row.ID,
		Owner:        row.Owner,
		Username:     row.Username,
		PIN:          row.PIN,
		InterestRate: rate,
		Currency:     row.Currency,
		Locale:       row.Locale,
	}

	var moves []movementRow
	query := fmt.Sprintf("SELECT * FROM %s WHERE ACCOUNT_ID = ? ORDER BY SEQ", movementTable)
	if err := s.db.Select(&moves, query, row.ID); err != nil {
		return nil, err
	}
	for _, m := range moves {
		amount, err := decimal.NewFromString(m.Amount)
		if err != nil {
			return nil, fmt.Errorf("bad movement amount for account %s: %w", row.ID, err)
		}
		acc.Movements = append(acc.Movements, model.Movement{Amount: amount, PostedAt: m.PostedAt})
	}
	return acc, nil
}
