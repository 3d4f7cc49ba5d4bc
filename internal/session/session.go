// Package session persists the logged-in user's credentials between runs.
//
// The service's entire client-side contract is two values: the session token
// and the username it was issued to. They live in a small sqlite file so a
// half-written save can never leave a token without its username.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Session is a saved login. Zero value means anonymous.
type Session struct {
	Token    string
	Username string
}

// IsZero reports whether no usable session is present.
func (s Session) IsZero() bool {
	return s.Token == "" || s.Username == ""
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the session, replacing any previous one.
func (s *Store) Save(sess Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		"token":    sess.Token,
		"username": sess.Username,
	} {
		_, err := tx.Exec(`
			INSERT INTO session (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Load returns the saved session. Missing or partial entries come back as
// the zero Session, not as an error.
func (s *Store) Load() (Session, error) {
	var sess Session
	for key, dst := range map[string]*string{
		"token":    &sess.Token,
		"username": &sess.Username,
	} {
		err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(dst)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return Session{}, fmt.Errorf("reading %s: %w", key, err)
		}
	}
	if sess.IsZero() {
		return Session{}, nil
	}
	return sess, nil
}

// Clear forgets the saved session. Called on logout and after account
// deletion; the server-side token is not revoked.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM session")
	return err
}
