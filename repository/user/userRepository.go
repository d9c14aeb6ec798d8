package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

type Repo interface {
	// CreateCustomer inserts the user row and its customer profile in one
	// transaction.
	CreateCustomer(ctx context.Context, u *model.User, c *model.Customer) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	CustomerByUserID(ctx context.Context, userID int64) (*model.Customer, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) CreateCustomer(ctx context.Context, u *model.User, c *model.Customer) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1,$2,$3)
		RETURNING user_id, created_at`,
		u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return err
	}

	c.UserID = u.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO customer (user_id, name, email, phone)
		VALUES ($1,$2,$3,$4)
		RETURNING customer_id`,
		c.UserID, c.Name, c.Email, c.Phone,
	).Scan(&c.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT user_id, email, password_hash, role, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) CustomerByUserID(ctx context.Context, userID int64) (*model.Customer, error) {
	c := &model.Customer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT customer_id, user_id, name, email, phone
		FROM customer
		WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
