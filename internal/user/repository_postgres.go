package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `"userId", email, password, "firstName", "lastName", phone, address, "createAt", "updateAt"`

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "userId" = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (email, password, "firstName", "lastName", phone, address, "createAt", "updateAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING "userId"`,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var phone, address, createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &phone, &address, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Phone = phone.String
	u.Address = address.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}
