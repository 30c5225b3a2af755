package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ecokan/vendo/database"
	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
)

type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo builds the SQLite-backed UserRepository.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

func (r *sqliteUserRepo) WithTx(tx *sql.Tx) UserRepository {
	return &sqliteUserRepo{db: tx}
}

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, deposit, role)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Deposit,
		user.Role,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, deposit, role
		FROM users WHERE id = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, deposit, role
		FROM users WHERE username = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *sqliteUserRepo) ListByID(ctx context.Context, id int64, limit int) ([]models.User, error) {
	query := `
		SELECT id, username, password_hash, deposit, role
		FROM users WHERE id = ? LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Deposit, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

func (r *sqliteUserRepo) UpdateRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	query := `
		UPDATE users SET role = ? WHERE id = ?
		RETURNING id, username, password_hash, deposit, role`

	return r.scanUser(r.db.QueryRowContext(ctx, query, role, id))
}

func (r *sqliteUserRepo) IncrementDeposit(ctx context.Context, id int64, amount int) (*models.User, error) {
	query := `
		UPDATE users SET deposit = deposit + ? WHERE id = ?
		RETURNING id, username, password_hash, deposit, role`

	return r.scanUser(r.db.QueryRowContext(ctx, query, amount, id))
}

func (r *sqliteUserRepo) DecrementDeposit(ctx context.Context, id int64, amount int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET deposit = deposit - ? WHERE id = ?`, amount, id)
	if err != nil {
		return fmt.Errorf("failed to decrement deposit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check decrement result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteUserRepo) ResetDeposit(ctx context.Context, id int64) (*models.User, error) {
	query := `
		UPDATE users SET deposit = 0 WHERE id = ?
		RETURNING id, username, password_hash, deposit, role`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteUserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteUserRepo) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Deposit, &user.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return user, nil
}

// isUniqueViolation matches the driver's UNIQUE constraint error text.
// modernc.org/sqlite does not export a typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
