package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventlane/apiserver/types"
	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (types.User, error) {
	const query = `
		SELECT id, firebase_uid, email, username
		FROM users
		WHERE firebase_uid = $1`
	var user types.User
	err := r.db.QueryRowContext(ctx, query, firebaseUID).Scan(
		&user.ID,
		&user.FirebaseUID,
		&user.Email,
		&user.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Create inserts a user row. A firebase_uid uniqueness violation is
// surfaced as ErrDuplicate so callers can re-fetch the winning row.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	const query = `
		INSERT INTO users (firebase_uid, email, username)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		user.FirebaseUID,
		user.Email,
		user.Username,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return types.User{}, ErrDuplicate
		}
		return types.User{}, err
	}
	return user, nil
}
