package memcache

import (
	"context"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New(100, 5*time.Minute)
	ctx := context.Background()

	// Cache miss
	_, ok, err := c.Get(ctx, "prediction:1.0.0:abc")
	if err != nil {
		t.Fatalf("Ошибка Get: %v", err)
	}
	if ok {
		t.Fatal("ожидался cache miss для нового ключа")
	}

	// Set + cache hit
	if err := c.Set(ctx, "prediction:1.0.0:abc", []byte(`{"prediction":true}`), 0); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}
	val, ok, err := c.Get(ctx, "prediction:1.0.0:abc")
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
	// Короткий TTL = 50ms для теста
	c := New(100, 50*time.Millisecond)
	ctx := context.Background()

	if err := c.Set(ctx, "ttl-test", []byte("v"), 0); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	// Сразу после Set — должен быть hit
	if _, ok, _ := c.Get(ctx, "ttl-test"); !ok {
		t.Fatal("ожидался cache hit сразу после Set")
	}

	// Ждём истечения TTL
	time.Sleep(100 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "ttl-test"); ok {
		t.Fatal("ожидался cache miss после истечения TTL")
	}
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := New(100, 5*time.Minute)
	ctx := context.Background()

	for _, k := range []string{"prediction:1.0.0:a", "prediction:1.0.0:b", "prediction:2.0.0:c"} {
		if err := c.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Ошибка Set: %v", err)
		}
	}
	if err := c.Set(ctx, "other:key", []byte("v"), 0); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}

	deleted, err := c.DeleteByPrefix(ctx, "prediction:")
	if err != nil {
		t.Fatalf("Ошибка DeleteByPrefix: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Удалено %d записей, ожидалось 3", deleted)
	}

	// Записи с префиксом удалены
	if _, ok, _ := c.Get(ctx, "prediction:1.0.0:a"); ok {
		t.Error("ожидался cache miss после DeleteByPrefix")
	}
	// Запись вне префикса не затронута
	if _, ok, _ := c.Get(ctx, "other:key"); !ok {
		t.Error("запись вне префикса не должна удаляться")
	}

	// Повторная очистка пустого префикса
	deleted, err = c.DeleteByPrefix(ctx, "prediction:")
	if err != nil {
		t.Fatalf("Ошибка повторного DeleteByPrefix: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Повторно удалено %d записей, ожидалось 0", deleted)
	}
}

func TestCache_CountByPrefix(t *testing.T) {
	c := New(100, 5*time.Minute)
	ctx := context.Background()

	count, err := c.CountByPrefix(ctx, "prediction:")
	if err != nil {
		t.Fatalf("Ошибка CountByPrefix: %v", err)
	}
	if count != 0 {
		t.Errorf("Пустой кэш: count = %d, ожидалось 0", count)
	}

	for _, k := range []string{"prediction:1.0.0:a", "prediction:1.0.0:b", "other:key"} {
		if err := c.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("Ошибка Set: %v", err)
		}
	}

	count, err = c.CountByPrefix(ctx, "prediction:")
	if err != nil {
		t.Fatalf("Ошибка CountByPrefix: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, ожидалось 2", count)
	}
}

func TestCache_MemoryAccounting(t *testing.T) {
	c := New(100, 5*time.Minute)
	ctx := context.Background()

	used, err := c.MemoryUsedBytes(ctx)
	if err != nil {
		t.Fatalf("Ошибка MemoryUsedBytes: %v", err)
	}
	if used != 0 {
		t.Errorf("Пустой кэш: used = %d, ожидалось 0", used)
	}

	// "k1" (2) + 10 байт значения
	if err := c.Set(ctx, "k1", []byte("0123456789"), 0); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}
	used, _ = c.MemoryUsedBytes(ctx)
	if used != 12 {
		t.Errorf("used = %d, ожидалось 12", used)
	}

	// Замена значения того же ключа: размер замещается, а не суммируется
	if err := c.Set(ctx, "k1", []byte("full"), 0); err != nil {
		t.Fatalf("Ошибка Set: %v", err)
	}
	used, _ = c.MemoryUsedBytes(ctx)
	if used != 6 {
		t.Errorf("После замены used = %d, ожидалось 6", used)
	}

	// После удаления — ноль
	if _, err := c.DeleteByPrefix(ctx, "k"); err != nil {
		t.Fatalf("Ошибка DeleteByPrefix: %v", err)
	}
	used, _ = c.MemoryUsedBytes(ctx)
	if used != 0 {
		t.Errorf("После удаления used = %d, ожидалось 0", used)
	}
}

func TestCache_Eviction(t *testing.T) {
	// Кэш на 2 записи
	c := New(2, 5*time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "r1", []byte("v1"), 0)
	_ = c.Set(ctx, "r2", []byte("v2"), 0)
	_ = c.Set(ctx, "r3", []byte("v3"), 0)

	// r1 вытеснена как самая старая
	if _, ok, _ := c.Get(ctx, "r1"); ok {
		t.Error("ожидалось вытеснение r1 при превышении maxEntries")
	}
	if _, ok, _ := c.Get(ctx, "r3"); !ok {
		t.Error("ожидался cache hit для r3")
	}

	// Учёт памяти после вытеснения: только r2 и r3
	used, _ := c.MemoryUsedBytes(ctx)
	if used != 8 {
		t.Errorf("used = %d, ожидалось 8", used)
	}
}

func TestCache_Ping(t *testing.T) {
	c := New(10, time.Minute)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping in-memory кэша не должен возвращать ошибку: %v", err)
	}
}
