package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/secrets"
	"gamecraft-engine/internal/store"
)

// DBPersister keeps the session row in sqlite under the fixed namespace and
// parks the token in the OS keychain when one is available. If the keychain
// is unusable (headless Linux without a dbus secret service), the token rides
// along in the sqlite row instead.
type DBPersister struct {
	DB      *sql.DB
	Account string // keyring account, e.g. "gamecraft:session:<data-dir>"
	Timeout time.Duration
}

func NewDBPersister(db *sql.DB, account string) *DBPersister {
	return &DBPersister{DB: db, Account: account, Timeout: 2 * time.Second}
}

func (p *DBPersister) ctx() (context.Context, context.CancelFunc) {
	d := p.Timeout
	if d <= 0 {
		d = 2 * time.Second
	}
	return context.WithTimeout(context.Background(), d)
}

func (p *DBPersister) Load() (domain.Session, bool, error) {
	ctx, cancel := p.ctx()
	defer cancel()

	raw, err := store.GetValue(ctx, p.DB, Namespace)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("session load: %w", err)
	}
	if raw == "" {
		return domain.Session{}, false, nil
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return domain.Session{}, false, fmt.Errorf("session decode: %w", err)
	}

	if sess.Token == "" && sess.User != nil {
		if tok, err := secrets.GetSessionToken(p.Account); err == nil {
			sess.Token = tok
		}
	}
	return sess, true, nil
}

func (p *DBPersister) Save(sess domain.Session) error {
	ctx, cancel := p.ctx()
	defer cancel()

	if sess.Token != "" {
		if err := secrets.SetSessionToken(p.Account, sess.Token); err == nil {
			sess.Token = "" // token lives in the keychain, keep it out of sqlite
		}
	} else {
		_ = secrets.DeleteSessionToken(p.Account)
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := store.PutValue(ctx, p.DB, Namespace, string(b)); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}
