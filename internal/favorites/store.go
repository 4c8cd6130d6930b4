// Package favorites keeps the per-session set of favorited product ids.
// Every mutation is flushed to the local sqlite store before Toggle returns,
// so a crash right after a toggle never loses it. Hydration is forgiving:
// corrupt entries in a stored payload are dropped, never the whole set.
package favorites

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// OpenDB opens the local sqlite database and ensures the schema.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS favorites(
  session_id TEXT PRIMARY KEY,
  ids_json   TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

type Store struct {
	db *sqlx.DB

	// OnFavorited fires exactly once per absent->present transition, after
	// the mutation has been persisted. Never fires on removal.
	OnFavorited func(productID int)
}

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// List hydrates the session's favorite ids from the store. A missing row is
// an empty set; a malformed payload keeps whatever valid entries remain.
func (s *Store) List(sessionID string) ([]int, error) {
	var payload string
	err := s.db.Get(&payload, `SELECT ids_json FROM favorites WHERE session_id=?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(payload), nil
}

// Contains reports whether the product is favorited in this session.
func (s *Store) Contains(sessionID string, productID int) (bool, error) {
	ids, err := s.List(sessionID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

// Toggle flips membership and persists the updated set before returning.
// It reports the new state: true when the product is now favorited.
func (s *Store) Toggle(sessionID string, productID int) (bool, error) {
	ids, err := s.List(sessionID)
	if err != nil {
		return false, err
	}

	added := true
	next := make([]int, 0, len(ids)+1)
	for _, id := range ids {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}

	if err := s.put(sessionID, next); err != nil {
		return false, err
	}
	if added && s.OnFavorited != nil {
		s.OnFavorited(productID)
	}
	return added, nil
}

func (s *Store) put(sessionID string, ids []int) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	  INSERT INTO favorites(session_id, ids_json, updated_at)
	  VALUES(?, ?, ?)
	  ON CONFLICT(session_id) DO UPDATE SET
	    ids_json=excluded.ids_json, updated_at=excluded.updated_at
	`, sessionID, string(payload), time.Now().Format(time.RFC3339))
	return err
}

// decode recovers the valid numeric ids from a stored payload, silently
// dropping everything else.
func decode(payload string) []int {
	out := []int{}
	parsed := gjson.Parse(payload)
	if !parsed.IsArray() {
		return out
	}
	parsed.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.Number && v.Num == float64(int(v.Num)) {
			out = append(out, int(v.Num))
		}
		return true
	})
	return out
}
