package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/db"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserStore reads and writes user records. It is an interface so the auth
// service can be tested against an in-memory implementation.
type UserStore interface {
	// FindByEmail returns the user with the given email, or a NotFoundError.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByID returns the user with the given id, or a NotFoundError.
	FindByID(ctx context.Context, id int) (*User, error)
	// Create inserts a new user. A duplicate email yields a ConflictError.
	Create(ctx context.Context, name, email, hashedPassword string) (*User, error)
}

// PostgresUserStore implements UserStore over a pgx connection pool.
type PostgresUserStore struct {
	pool db.Pool
}

// NewPostgresUserStore constructs a Postgres-backed user store.
func NewPostgresUserStore(pool db.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// Create inserts a new user row. Uniqueness is enforced by the store's unique
// constraint on email: the insert is atomic and a constraint violation is
// translated to a ConflictError, so two concurrent registrations with the
// same email cannot both succeed.
func (s *PostgresUserStore) Create(ctx context.Context, name, email, hashedPassword string) (*User, error) {
	user := &User{
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
	}
	const query = `INSERT INTO users (name, email, password)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query, name, email, hashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("email already registered", err)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email address.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID retrieves a user by id.
func (s *PostgresUserStore) FindByID(ctx context.Context, id int) (*User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	return s.scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresUserStore) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", err)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}
