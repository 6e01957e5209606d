package cart

import (
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresRepository stores each user's cart as a jsonb array on the users row.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]LineItem, error) {
	var raw sql.NullString
	if err := r.db.QueryRow(`SELECT cart FROM users WHERE "userId" = $1`, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !raw.Valid || raw.String == "" {
		return []LineItem{}, nil
	}

	items := make([]LineItem, 0)
	if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Replace(userID int, items []LineItem) ([]LineItem, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	res, err := r.db.Exec(`UPDATE users SET cart = $1, "updateAt" = $2 WHERE "userId" = $3`,
		string(b), time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return items, nil
}

func (r *PostgresRepository) Clear(userID int) error {
	res, err := r.db.Exec(`UPDATE users SET cart = '[]', "updateAt" = $1 WHERE "userId" = $2`,
		time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
