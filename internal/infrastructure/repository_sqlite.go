package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sulthonmb/TikTok-Video-Transcriber/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteBatchRepository implements domain.BatchRepository using SQLite.
type SQLiteBatchRepository struct {
	db *gorm.DB
}

// NewSQLiteBatchRepository creates a new SQLite repository
func NewSQLiteBatchRepository(dbPath string) (*SQLiteBatchRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Batch{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteBatchRepository{db: db}, nil
}

// Save persists a processed batch.
func (r *SQLiteBatchRepository) Save(batch *domain.Batch) error {
	return r.db.Save(batch).Error
}

// FindByID finds a batch by ID
func (r *SQLiteBatchRepository) FindByID(id string) (*domain.Batch, error) {
	var batch domain.Batch
	err := r.db.First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindAll returns all batches, newest first.
func (r *SQLiteBatchRepository) FindAll() ([]*domain.Batch, error) {
	var batches []*domain.Batch
	err := r.db.Order("created_at DESC").Find(&batches).Error
	return batches, err
}

// Delete deletes a batch by ID
func (r *SQLiteBatchRepository) Delete(id string) error {
	return r.db.Delete(&domain.Batch{}, "id = ?", id).Error
}

// Count returns the total number of stored batches.
func (r *SQLiteBatchRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Batch{}).Count(&count).Error
	return count, err
}
