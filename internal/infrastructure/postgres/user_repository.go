package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `uid, name, email, password_hash, photo_url, role, upline_uid, commission_rate, mlm_enabled, pending_balance, settled_balance, created_at, updated_at`

// Create persiste um novo usuário.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		user.UID, user.Name, user.Email, user.PasswordHash, user.PhotoURL,
		user.Role, nullIfEmpty(user.UplineUID), user.CommissionRate, user.MlmEnabled,
		user.PendingBalance, user.SettledBalance, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: uid ou email duplicado: %w", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUID obtém um usuário por uid.
func (r *UserRepo) GetByUID(uid string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, uid), "get user by uid")
}

// GetByEmail obtém um usuário por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email), "get user by email")
}

// Update atualiza um usuário.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, photo_url = $5,
		       role = $6, upline_uid = $7, commission_rate = $8, mlm_enabled = $9,
		       pending_balance = $10, settled_balance = $11, updated_at = $12
		WHERE uid = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.UID, user.Name, user.Email, user.PasswordHash, user.PhotoURL,
		user.Role, nullIfEmpty(user.UplineUID), user.CommissionRate, user.MlmEnabled,
		user.PendingBalance, user.SettledBalance, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListAll devolve o snapshot completo de usuários.
func (r *UserRepo) ListAll() ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByRole lista usuários de um role específico.
func (r *UserRepo) ListByRole(role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	var uplineUID *string
	err := row.Scan(
		&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.PhotoURL, &u.Role,
		&uplineUID, &u.CommissionRate, &u.MlmEnabled,
		&u.PendingBalance, &u.SettledBalance, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if uplineUID != nil {
		u.UplineUID = *uplineUID
	}
	return &u, nil
}

func (r *UserRepo) scanMany(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var uplineUID *string
		if err := rows.Scan(
			&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.PhotoURL, &u.Role,
			&uplineUID, &u.CommissionRate, &u.MlmEnabled,
			&u.PendingBalance, &u.SettledBalance, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if uplineUID != nil {
			u.UplineUID = *uplineUID
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// nullIfEmpty grava string vazia como NULL (UplineUID ausente).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
