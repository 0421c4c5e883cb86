package genderrender

import (
	"sync"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("{they}")
	if len(a) != 64 {
		t.Errorf("len(CacheKey) = %d, want 64", len(a))
	}
	if a != CacheKey("{they}") {
		t.Error("Expected equal sources to have equal keys")
	}
	if a == CacheKey("{them}") {
		t.Error("Expected different sources to have different keys")
	}
}

func TestTemplateCache_Basic(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 10})
	tmpl := &Template{source: "{they}"}

	if _, ok := cache.Get("key"); ok {
		t.Error("Expected empty cache to miss")
	}
	cache.Set("key", tmpl)
	got, ok := cache.Get("key")
	if !ok || got != tmpl {
		t.Error("Expected cached template to be the same object")
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}

	replacement := &Template{source: "{them}"}
	cache.Set("key", replacement)
	if got, _ := cache.Get("key"); got != replacement {
		t.Error("Expected Set to replace an existing entry")
	}
	if cache.Size() != 1 {
		t.Errorf("Size() after replace = %d, want 1", cache.Size())
	}

	cache.Remove("key")
	if _, ok := cache.Get("key"); ok {
		t.Error("Expected removed entry to miss")
	}
}

func TestTemplateCache_LRUEviction(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 2})
	t1, t2, t3 := &Template{}, &Template{}, &Template{}

	cache.Set("one", t1)
	cache.Set("two", t2)
	// touching "one" makes "two" the least recently used entry
	cache.Get("one")
	cache.Set("three", t3)

	if _, ok := cache.Get("two"); ok {
		t.Error("Expected least recently used entry to be evicted")
	}
	if _, ok := cache.Get("one"); !ok {
		t.Error("Expected recently used entry to stay")
	}
	if _, ok := cache.Get("three"); !ok {
		t.Error("Expected new entry to be cached")
	}
	if cache.Size() != 2 {
		t.Errorf("Size() = %d, want 2", cache.Size())
	}
}

func TestTemplateCache_TTL(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 10, TTL: time.Minute})
	cache.now = func() time.Time { return now }

	cache.Set("key", &Template{})
	now = now.Add(30 * time.Second)
	if _, ok := cache.Get("key"); !ok {
		t.Error("Expected entry to be valid before the TTL")
	}
	now = now.Add(time.Minute)
	if _, ok := cache.Get("key"); ok {
		t.Error("Expected entry to expire after the TTL")
	}
	if cache.Size() != 0 {
		t.Errorf("Expired entry still counted, Size() = %d", cache.Size())
	}
}

func TestTemplateCache_Disabled(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 0})
	cache.Set("key", &Template{})
	if _, ok := cache.Get("key"); ok {
		t.Error("Expected disabled cache to miss")
	}
	if cache.Enabled() {
		t.Error("Expected cache with MaxSize 0 to be disabled")
	}

	var nilCache *TemplateCache
	nilCache.Set("key", &Template{})
	nilCache.Remove("key")
	nilCache.Clear()
	if nilCache.Size() != 0 {
		t.Error("Expected nil cache to be empty")
	}
}

func TestTemplateCache_Clear(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 10})
	cache.Set("a", &Template{})
	cache.Set("b", &Template{})

	if err := cache.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if cache.Size() != 0 {
		t.Errorf("Size() after Close = %d, want 0", cache.Size())
	}
}

func TestTemplateCache_Concurrent(t *testing.T) {
	cache := NewTemplateCacheWithConfig(CacheConfig{MaxSize: 5})
	keys := []string{"a", "b", "c", "d", "e", "f", "g"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := keys[i%len(keys)]
			cache.Set(key, &Template{})
			cache.Get(keys[(i+1)%len(keys)])
		}(i)
	}
	wg.Wait()

	if cache.Size() > 5 {
		t.Errorf("Size() = %d exceeds the maximum", cache.Size())
	}
}
