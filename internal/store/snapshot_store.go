package store

import (
	"context"
	"errors"
	"time"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type DocumentSnapshotModel struct {
	ID         uint64 `gorm:"primaryKey"`
	DocumentID string `gorm:"uniqueIndex:idx_doc_rev"`
	Revision   uint64 `gorm:"uniqueIndex:idx_doc_rev"`
	Content    string `gorm:"type:longtext"`
	CreatedAt  time.Time
}

type SnapshotStore struct{ db *gorm.DB }

func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// SaveDocumentSnapshot is idempotent: a retried save for a revision
// that already has a row is a no-op, not an error, since the content
// for a given (docID, revision) pair never changes.
func (s *SnapshotStore) SaveDocumentSnapshot(ctx context.Context, docID string, rev uint64, content string) error {
	err := s.db.WithContext(ctx).Create(&DocumentSnapshotModel{
		DocumentID: docID,
		Revision:   rev,
		Content:    content,
	}).Error
	if err != nil {
		var mysqlErr *mysqlerr.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil
		}
		return err
	}
	return nil
}
