package store

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type DocumentModel struct {
	ID        uint64 `gorm:"primaryKey"`
	OwnerID   uint64
	Title     string `gorm:"uniqueIndex"`
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DocumentStore struct{ db *gorm.DB }

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) GetDocumentID(ctx context.Context, title string) (string, error) {
	var doc DocumentModel
	if err := s.db.WithContext(ctx).Where("title = ?", title).First(&doc).Error; err != nil {
		return "", err
	}
	return strconv.FormatUint(doc.ID, 10), nil
}

func (s *DocumentStore) CreateDocument(ctx context.Context, ownerID uint64, title string) error {
	return s.db.WithContext(ctx).Create(&DocumentModel{OwnerID: ownerID, Title: title}).Error
}
