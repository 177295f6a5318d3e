package database

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseManager caches serialized search results in the cache_entries
// table so repeated identical queries skip the count + page pair.
type DatabaseManager struct {
	db *gorm.DB
}

// NewDatabaseManager creates a new database manager with GORM
func NewDatabaseManager(gormDB *gorm.DB) (*DatabaseManager, error) {
	if err := gormDB.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, err
	}
	return &DatabaseManager{db: gormDB}, nil
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CacheSearchResult caches one serialized search result under a query key.
// An existing entry for the key is refreshed in place, so re-caching after
// expiry never trips the unique index on cache_key.
func (dm *DatabaseManager) CacheSearchResult(key string, result interface{}, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	cacheEntry := &CacheEntry{
		Key:       "search:" + key,
		Data:      string(data),
		Type:      "search",
		ExpiresAt: time.Now().Add(ttl),
	}

	return dm.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(cacheEntry).Error
}

// GetCachedSearchResult retrieves a cached search result into dest,
// returning false when the key is absent or expired.
func (dm *DatabaseManager) GetCachedSearchResult(key string, dest interface{}) (bool, error) {
	var cacheEntry CacheEntry
	err := dm.db.Where("cache_key = ? AND expires_at > ?", "search:"+key, time.Now()).First(&cacheEntry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(cacheEntry.Data), dest); err != nil {
		return false, err
	}
	return true, nil
}

// CleanupExpired deletes expired cache entries, returning how many went
func (dm *DatabaseManager) CleanupExpired() (int64, error) {
	result := dm.db.Where("expires_at <= ?", time.Now()).Delete(&CacheEntry{})
	return result.RowsAffected, result.Error
}

// GetCacheStats returns cache statistics
func (dm *DatabaseManager) GetCacheStats() (map[string]interface{}, error) {
	var totalCount int64
	var expiredCount int64

	dm.db.Model(&CacheEntry{}).Count(&totalCount)
	dm.db.Model(&CacheEntry{}).Where("expires_at <= ?", time.Now()).Count(&expiredCount)

	return map[string]interface{}{
		"total_entries":   totalCount,
		"expired_entries": expiredCount,
		"active_entries":  totalCount - expiredCount,
	}, nil
}

// CacheEntry represents a cache entry in the database
type CacheEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"column:cache_key;uniqueIndex;not null"`
	Data      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for CacheEntry
func (CacheEntry) TableName() string {
	return "cache_entries"
}
