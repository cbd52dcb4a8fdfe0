package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// testBlobStore verifica el contrato común de todos los BlobStore
func testBlobStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Load on empty store: expected ErrCacheNotFound, got %v", err)
	}

	if err := store.Save(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := store.Save(ctx, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	data, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"a":2}` {
		t.Errorf("Load = %s, want the last saved blob", data)
	}

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "coinbase_cache.json")
	testBlobStore(t, NewFileStore(path))

	// No deben quedar archivos temporales después de guardar
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the cache file, found %d entries", len(entries))
	}
}

func TestSQLStoreSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "movers.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer db.Close()

	testBlobStore(t, NewSQLStore(db, database.DriverSQLite, "coinbase_cache"))
}

func TestSQLStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "movers.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer db.Close()

	a := NewSQLStore(db, database.DriverSQLite, "a")
	b := NewSQLStore(db, database.DriverSQLite, "b")

	if err := a.Save(ctx, []byte("A")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := b.Load(ctx); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("store b should be empty, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testBlobStore(t, NewRedisStore(client, "coinbase_cache"))

	if mr.TTL("coinbase_cache") != 0 {
		t.Errorf("cache key should not expire, ttl = %v", mr.TTL("coinbase_cache"))
	}
}
