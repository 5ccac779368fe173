package kvstore

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const backendSQL = "sql"

// Entry is one row of the SQL-backed key-value table.
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

type GormStore struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	return &GormStore{db: db, logger: logger.Sugar()}
}

func (s *GormStore) Get(ctx context.Context, key string, dest any) bool {
	var entry Entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if err != nil {
		s.logger.Errorw("Error reading key", "key", key, "error", err)
		record(backendSQL, "get", false)
		return false
	}
	if err := decodeInto([]byte(entry.Value), dest); err != nil {
		s.logger.Warnw("Failed to decode stored value", "key", key, "error", err)
		record(backendSQL, "get", false)
		return false
	}
	record(backendSQL, "get", true)
	return true
}

func (s *GormStore) Set(ctx context.Context, key string, value any) bool {
	raw, err := encode(value)
	if err != nil {
		s.logger.Errorw("Failed to encode value", "key", key, "error", err)
		record(backendSQL, "set", false)
		return false
	}
	entry := Entry{Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		s.logger.Errorw("Error writing key", "key", key, "error", err)
		record(backendSQL, "set", false)
		return false
	}
	record(backendSQL, "set", true)
	return true
}

func (s *GormStore) Remove(ctx context.Context, key string) bool {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error; err != nil {
		s.logger.Errorw("Error removing key", "key", key, "error", err)
		record(backendSQL, "remove", false)
		return false
	}
	record(backendSQL, "remove", true)
	return true
}
