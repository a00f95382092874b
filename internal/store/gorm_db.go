package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenMySQL opens the gorm handle every store in this package shares;
// AutoMigrate is run once at startup so a fresh database comes up
// ready without a separate migration step.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&DocumentModel{}, &DocumentSnapshotModel{}, &UserModel{}); err != nil {
		return nil, err
	}
	return db, nil
}
