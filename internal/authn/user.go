package authn

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"collabdelta/internal/store"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 3*time.Second)
}

func (r *UserRepository) CreateUser(ctx context.Context, username string, passwordHash []byte) (uint64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	u := store.UserModel{Username: username, PasswordHash: passwordHash}
	err := r.db.WithContext(ctx).Create(&u).Error
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, ErrDeadlineExceeded
		}
		if isDuplicateKey(err) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return u.ID, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*store.UserModel, error) {
	var u store.UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
