package persist

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"pricecard/internal/models"
)

// cacheKey is the one opaque key the cache table holds
const cacheKey = "appdata"

// CachedConfig represents the single-row cache table
type CachedConfig struct {
	gorm.Model
	CacheKey string `gorm:"unique_index"`
	Payload  string `gorm:"type:text"`
}

// DBCache is a ConfigCache backed by a gorm database (SQLite locally,
// PostgreSQL when a DSN is configured)
type DBCache struct {
	db *gorm.DB
}

// OpenCache opens the cache database and migrates its schema
func OpenCache(dialect, source string) (*DBCache, error) {
	db, err := gorm.Open(dialect, source)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.AutoMigrate(&CachedConfig{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache schema: %w", err)
	}
	return &DBCache{db: db}, nil
}

// Load returns the cached configuration, or (nil, nil) when none is cached
func (c *DBCache) Load() (*models.AppData, error) {
	var row CachedConfig
	err := c.db.Where("cache_key = ?", cacheKey).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache row: %w", err)
	}

	var cfg models.AppData
	if err := json.Unmarshal([]byte(row.Payload), &cfg); err != nil {
		return nil, fmt.Errorf("parse cached configuration: %w", err)
	}
	return &cfg, nil
}

// Store overwrites the cached configuration
func (c *DBCache) Store(cfg *models.AppData) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	var row CachedConfig
	err = c.db.Where(CachedConfig{CacheKey: cacheKey}).
		Assign(CachedConfig{CacheKey: cacheKey, Payload: string(payload)}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("write cache row: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *DBCache) Close() error {
	return c.db.Close()
}
