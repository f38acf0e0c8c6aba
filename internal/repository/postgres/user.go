package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imagify/community-service/internal/domain"
)

// UserDirectory реализует repository.UserDirectory для PostgreSQL
type UserDirectory struct {
	db *pgxpool.Pool
}

// NewUserDirectory создает новый экземпляр UserDirectory
func NewUserDirectory(db *pgxpool.Pool) *UserDirectory {
	return &UserDirectory{db: db}
}

// Create создает новую учетную запись
func (r *UserDirectory) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrEmailTaken
		}
		return err
	}

	return nil
}

// GetByEmail получает пользователя по email
func (r *UserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetByID получает пользователя по внутреннему ID
func (r *UserDirectory) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, email, username
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Email, &user.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
