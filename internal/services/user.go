package services

import (
	"context"
	"errors"
	"strings"

	"github.com/eventlane/apiserver/internal/store"
	"github.com/eventlane/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// LoginOrRegister resolves the account for an external identity, creating
// it on first sight. Registration derives the username from the local part
// of the email; subsequent logins return the stored record unchanged, even
// if the email differs. Two concurrent first logins race on the insert; the
// loser hits the firebase_uid uniqueness constraint and re-fetches the
// winner's row.
func (s *UserService) LoginOrRegister(ctx context.Context, firebaseUID, email string) (types.User, error) {
	user, err := s.repo.GetByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	created, err := s.repo.Create(ctx, types.User{
		FirebaseUID: firebaseUID,
		Email:       email,
		Username:    usernameFromEmail(email),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return s.repo.GetByFirebaseUID(ctx, firebaseUID)
		}
		return types.User{}, err
	}
	return created, nil
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
