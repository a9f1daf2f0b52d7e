package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionDocument is the row layout used by GormBackend: one row per
// collection holding the full JSON array.
type CollectionDocument struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"type:json;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (CollectionDocument) TableName() string {
	return "collections"
}

// GormBackend stores collection documents in a SQL table.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend migrates the collections table and returns the backend.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must not be nil")
	}
	if err := db.AutoMigrate(&CollectionDocument{}); err != nil {
		return nil, fmt.Errorf("migrate collections table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	var doc CollectionDocument
	err := b.db.WithContext(ctx).Where("name = ?", collection).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc = CollectionDocument{Name: collection, Payload: datatypes.JSON(emptyCollection)}
		if err := b.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&doc).Error; err != nil {
			return nil, err
		}
		return append([]byte(nil), emptyCollection...), nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Payload), nil
}

func (b *GormBackend) Write(ctx context.Context, collection string, payload []byte) error {
	doc := CollectionDocument{
		Name:      collection,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now().UTC(),
	}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&doc).Error
}
