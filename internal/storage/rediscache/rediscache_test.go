package rediscache

import (
	"context"
	"os"
	"testing"
	"time"
)

// newTestCache подключается к Redis из REDIS_ADDR.
// Интеграционные тесты пропускаются, если переменная не задана.
func newTestCache(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR не задан, интеграционный тест пропущен")
	}
	c := New(addr, "", 0, 5*time.Second)
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Redis по адресу %s недоступен: %v", addr, err)
	}
	return c
}

// testPrefix — уникальный префикс ключей для теста.
func testPrefix(t *testing.T) string {
	t.Helper()
	return "test:" + t.Name() + ":"
}

func TestCache_GetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := testPrefix(t) + "k1"
	t.Cleanup(func() { _, _ = c.DeleteByPrefix(ctx, testPrefix(t)) })

	// Miss для нового ключа
	_, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	if err := c.Set(ctx, key, []byte(`{"prediction":true}`), 10*time.Second); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	val, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if !ok {
		t.Fatal("ожидался cache hit после Set")
	}
	if string(val) != `{"prediction":true}` {
		t.Errorf("Значение = %q, ожидалось %q", val, `{"prediction":true}`)
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := testPrefix(t) + "ttl"
	t.Cleanup(func() { _, _ = c.DeleteByPrefix(ctx, testPrefix(t)) })

	if err := c.Set(ctx, key, []byte("v"), 100*time.Millisecond); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	// Сразу после Set — hit
	_, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if !ok {
		t.Fatal("ожидался cache hit сразу после Set")
	}

	// Ждём истечения TTL
	time.Sleep(300 * time.Millisecond)

	_, ok, err = c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if ok {
		t.Fatal("ожидался cache miss после истечения TTL")
	}
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	prefix := testPrefix(t)
	other := "test:" + t.Name() + "-other:k"
	t.Cleanup(func() {
		_, _ = c.DeleteByPrefix(ctx, prefix)
		_, _ = c.DeleteByPrefix(ctx, other)
	})

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, prefix+k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Ошибка Set: %v", err)
		}
	}
	if err := c.Set(ctx, other, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	deleted, err := c.DeleteByPrefix(ctx, prefix)
	if err != nil {
		t.Fatalf("Ошибка DeleteByPrefix: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Удалено %d ключей, ожидалось 3", deleted)
	}

	// Ключ вне префикса не затронут
	_, ok, err := c.Get(ctx, other)
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if !ok {
		t.Error("ключ вне префикса не должен удаляться")
	}

	// Повторная очистка пустого префикса
	deleted, err = c.DeleteByPrefix(ctx, prefix)
	if err != nil {
		t.Fatalf("Ошибка повторного DeleteByPrefix: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Повторно удалено %d ключей, ожидалось 0", deleted)
	}
}

func TestCache_CountByPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	prefix := testPrefix(t)
	t.Cleanup(func() { _, _ = c.DeleteByPrefix(ctx, prefix) })

	count, err := c.CountByPrefix(ctx, prefix)
	if err != nil {
		t.Fatalf("Ошибка CountByPrefix: %v", err)
	}
	if count != 0 {
		t.Errorf("Пустой префикс: count = %d, ожидалось 0", count)
	}

	for i := 0; i < 5; i++ {
		key := prefix + string(rune('a'+i))
		if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Ошибка Set: %v", err)
		}
	}

	count, err = c.CountByPrefix(ctx, prefix)
	if err != nil {
		t.Fatalf("Ошибка CountByPrefix: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, ожидалось 5", count)
	}
}

func TestCache_MemoryUsedBytes(t *testing.T) {
	c := newTestCache(t)

	used, err := c.MemoryUsedBytes(context.Background())
	if err != nil {
		t.Fatalf("Ошибка MemoryUsedBytes: %v", err)
	}
	if used <= 0 {
		t.Errorf("used_memory = %d, ожидалось положительное значение", used)
	}
}

// TestCache_Unavailable проверяет, что ошибки соединения возвращаются
// вызывающему, а не проглатываются.
func TestCache_Unavailable(t *testing.T) {
	c := New("localhost:1", "", 0, 200*time.Millisecond)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Ping(ctx); err == nil {
		t.Error("ожидалась ошибка Ping для недоступного Redis")
	}
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("ожидалась ошибка Get для недоступного Redis")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Second); err == nil {
		t.Error("ожидалась ошибка Set для недоступного Redis")
	}
	if _, err := c.DeleteByPrefix(ctx, "test:"); err == nil {
		t.Error("ожидалась ошибка DeleteByPrefix для недоступного Redis")
	}
	if _, err := c.CountByPrefix(ctx, "test:"); err == nil {
		t.Error("ожидалась ошибка CountByPrefix для недоступного Redis")
	}
	if _, err := c.MemoryUsedBytes(ctx); err == nil {
		t.Error("ожидалась ошибка MemoryUsedBytes для недоступного Redis")
	}
}
