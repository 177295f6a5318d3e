package database_test

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ykhknw/pocketnavi/pkg/database"
)

func newTestManager(t *testing.T) *database.DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	manager, err := database.NewDatabaseManager(db)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return manager
}

type cachedPayload struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}

func TestCacheRoundTrip(t *testing.T) {
	manager := newTestManager(t)

	stored := cachedPayload{Total: 42, Page: 3}
	if err := manager.CacheSearchResult("q=tokyo", stored, time.Minute); err != nil {
		t.Fatalf("CacheSearchResult failed: %v", err)
	}

	var loaded cachedPayload
	hit, err := manager.GetCachedSearchResult("q=tokyo", &loaded)
	if err != nil {
		t.Fatalf("GetCachedSearchResult failed: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if loaded != stored {
		t.Errorf("loaded = %+v, want %+v", loaded, stored)
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	manager := newTestManager(t)

	var loaded cachedPayload
	hit, err := manager.GetCachedSearchResult("q=never-cached", &loaded)
	if err != nil {
		t.Fatalf("GetCachedSearchResult failed: %v", err)
	}
	if hit {
		t.Error("expected a miss for an absent key")
	}
}

func TestCacheRefreshesExistingKey(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.CacheSearchResult("q=osaka", cachedPayload{Total: 1}, time.Minute); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := manager.CacheSearchResult("q=osaka", cachedPayload{Total: 2}, time.Minute); err != nil {
		t.Fatalf("rewrite of an existing key failed: %v", err)
	}

	var loaded cachedPayload
	hit, err := manager.GetCachedSearchResult("q=osaka", &loaded)
	if err != nil || !hit {
		t.Fatalf("GetCachedSearchResult: hit=%v err=%v", hit, err)
	}
	if loaded.Total != 2 {
		t.Errorf("total = %d, want the rewritten value 2", loaded.Total)
	}
}

func TestCacheRecachesAfterExpiry(t *testing.T) {
	manager := newTestManager(t)

	// Write an already-expired entry: the key is occupied but unreadable.
	if err := manager.CacheSearchResult("q=kyoto", cachedPayload{Total: 1}, -time.Minute); err != nil {
		t.Fatalf("expired write failed: %v", err)
	}

	var loaded cachedPayload
	hit, err := manager.GetCachedSearchResult("q=kyoto", &loaded)
	if err != nil {
		t.Fatalf("GetCachedSearchResult failed: %v", err)
	}
	if hit {
		t.Fatal("expired entry must read as a miss")
	}

	// Re-caching the same key must succeed without waiting for cleanup.
	if err := manager.CacheSearchResult("q=kyoto", cachedPayload{Total: 7}, time.Minute); err != nil {
		t.Fatalf("re-cache after expiry failed: %v", err)
	}
	hit, err = manager.GetCachedSearchResult("q=kyoto", &loaded)
	if err != nil || !hit {
		t.Fatalf("GetCachedSearchResult after re-cache: hit=%v err=%v", hit, err)
	}
	if loaded.Total != 7 {
		t.Errorf("total = %d, want the re-cached value 7", loaded.Total)
	}
}

func TestCleanupExpired(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.CacheSearchResult("q=stale", cachedPayload{}, -time.Minute); err != nil {
		t.Fatalf("expired write failed: %v", err)
	}
	if err := manager.CacheSearchResult("q=fresh", cachedPayload{}, time.Minute); err != nil {
		t.Fatalf("live write failed: %v", err)
	}

	removed, err := manager.CleanupExpired()
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	var loaded cachedPayload
	if hit, err := manager.GetCachedSearchResult("q=fresh", &loaded); err != nil || !hit {
		t.Errorf("live entry lost by cleanup: hit=%v err=%v", hit, err)
	}
}

func TestGetCacheStats(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.CacheSearchResult("q=stale", cachedPayload{}, -time.Minute); err != nil {
		t.Fatalf("expired write failed: %v", err)
	}
	if err := manager.CacheSearchResult("q=fresh", cachedPayload{}, time.Minute); err != nil {
		t.Fatalf("live write failed: %v", err)
	}

	stats, err := manager.GetCacheStats()
	if err != nil {
		t.Fatalf("GetCacheStats failed: %v", err)
	}
	if stats["total_entries"] != int64(2) {
		t.Errorf("total_entries = %v, want 2", stats["total_entries"])
	}
	if stats["expired_entries"] != int64(1) {
		t.Errorf("expired_entries = %v, want 1", stats["expired_entries"])
	}
	if stats["active_entries"] != int64(1) {
		t.Errorf("active_entries = %v, want 1", stats["active_entries"])
	}
}
