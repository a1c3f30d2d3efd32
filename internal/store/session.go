package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"taskdeck-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Session persistence. The token and user identity survive process restarts
// the same way the web client keeps them in browser storage: two fixed keys
// in a small sqlite db under the config dir.
const (
	sessionKeyToken = "access_token"
	sessionKeyUser  = "user"
)

// SessionStore owns the persisted session. It is the only component that
// writes the token/user pair; everything else reads through Current.
type SessionStore struct {
	// Dir overrides the config dir (tests). Empty means ConfigDir().
	Dir string
}

func (s SessionStore) dbPath() (string, error) {
	dir := s.Dir
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.sqlite"), nil
}

func (s SessionStore) open(ctx context.Context) (*sql.DB, error) {
	path, err := s.dbPath()
	if err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when CLI and TUI run side by side.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session_state (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Login persists the token/user pair. Both keys are written in one
// transaction so a crash cannot leave a token without an identity.
func (s SessionStore) Login(ctx context.Context, token string, user *model.User) error {
	token = strings.TrimSpace(token)
	if token == "" || user == nil {
		return errors.New("session: login requires both token and user")
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range [][2]string{
		{sessionKeyToken, token},
		{sessionKeyUser, string(userJSON)},
	} {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session_state(k, v) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Logout clears the persisted session. Clearing an already-empty session is
// not an error.
func (s SessionStore) Logout(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM session_state WHERE k IN (?, ?)`, sessionKeyToken, sessionKeyUser)
	return err
}

// Current returns the persisted session, or the empty session when nobody is
// logged in. A token without a readable user record counts as no session.
func (s SessionStore) Current(ctx context.Context) (model.Session, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Session{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT k, v FROM session_state WHERE k IN (?, ?)`, sessionKeyToken, sessionKeyUser)
	if err != nil {
		return model.Session{}, err
	}
	defer rows.Close()

	var token, userJSON string
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return model.Session{}, err
		}
		switch k {
		case sessionKeyToken:
			token = v
		case sessionKeyUser:
			userJSON = v
		}
	}
	if err := rows.Err(); err != nil {
		return model.Session{}, err
	}

	if token == "" || userJSON == "" {
		return model.Session{}, nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return model.Session{}, nil
	}
	return model.Session{Token: token, User: &user}, nil
}

// Token satisfies the API client's token source. Errors degrade to "no
// token": the request goes out unauthenticated and the server answers 401.
func (s SessionStore) Token(ctx context.Context) string {
	sess, err := s.Current(ctx)
	if err != nil {
		return ""
	}
	return sess.Token
}
