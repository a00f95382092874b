package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserID(ctx context.Context, username string) (uint64, error) {
	var u UserModel
	if err := s.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&u).Error; err != nil {
		return 0, err
	}
	return u.ID, nil
}
