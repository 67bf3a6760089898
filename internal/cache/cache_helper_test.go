package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "course:"), mr
}

type cachedCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestCacheHelper_SetGetRoundtrip(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedCourse{ID: "c1", Title: "Maths Bac"}
	if err := helper.Set(ctx, "c1", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out cachedCourse
	if err := helper.Get(ctx, "c1", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("Roundtrip mismatch: got %+v, want %+v", out, in)
	}

	exists, err := helper.Exists(ctx, "c1")
	if err != nil || !exists {
		t.Errorf("Expected key to exist, got exists=%v err=%v", exists, err)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var out cachedCourse
	if err := helper.Get(context.Background(), "absent", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := helper.Set(ctx, key, cachedCourse{ID: key}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var out cachedCourse
	if err := helper.Get(ctx, "a", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Error("Key a should be deleted")
	}
	if err := helper.Get(ctx, "c", &out); err != nil {
		t.Errorf("Key c should survive: %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "list:1", cachedCourse{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "list:2", cachedCourse{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "c1", cachedCourse{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var out cachedCourse
	if err := helper.Get(ctx, "list:1", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Error("Pattern keys should be gone")
	}
	if err := helper.Get(ctx, "c1", &out); err != nil {
		t.Errorf("Non-matching key should survive: %v", err)
	}
}

func TestCacheHelper_Expiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "c1", cachedCourse{ID: "c1"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var out cachedCourse
	if err := helper.Get(ctx, "c1", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Expected expiry after TTL, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedCourse{ID: "c1", Title: "Anglais"}, nil
	}

	var out cachedCourse
	if err := helper.CacheOrExecute(ctx, "c1", &out, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 || out.Title != "Anglais" {
		t.Errorf("Expected one fetch, got calls=%d out=%+v", calls, out)
	}

	// The async populate races the second read, so wait for the key.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if exists, _ := helper.Exists(ctx, "c1"); exists {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	var again cachedCourse
	if err := helper.CacheOrExecute(ctx, "c1", &again, time.Minute, fetch); err != nil {
		t.Fatalf("Second CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected cache hit on second call, fetch ran %d times", calls)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "course:")
	ctx := context.Background()

	if err := helper.Set(ctx, "c1", cachedCourse{}, time.Minute); err != nil {
		t.Errorf("Set without client should be a no-op: %v", err)
	}

	var out cachedCourse
	if err := helper.Get(ctx, "c1", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}

	if err := helper.Delete(ctx, "c1"); err != nil {
		t.Errorf("Delete without client should be a no-op: %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "*"); err != nil {
		t.Errorf("InvalidatePattern without client should be a no-op: %v", err)
	}

	calls := 0
	if err := helper.CacheOrExecute(ctx, "c1", &out, time.Minute, func() (interface{}, error) {
		calls++
		return cachedCourse{ID: "c1"}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute without client failed: %v", err)
	}
	if calls != 1 || out.ID != "c1" {
		t.Errorf("Fetch should still run without a cache: calls=%d out=%+v", calls, out)
	}
}
