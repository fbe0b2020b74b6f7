// Пакет memcache — in-memory бэкенд кэша предсказаний.
// Обёртка над hashicorp/golang-lru/v2/expirable: LRU с автоматическим TTL.
// Используется при PA_CACHE_BACKEND=memory и как замена Redis в тестах.
// Кэш per-instance: при нескольких репликах API каждая держит свой.
package memcache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache — LRU-кэш с TTL и учётом занятой памяти.
type Cache struct {
	lru *expirable.LRU[string, []byte]
	// setMu сериализует Set: точный учёт байтов при замене значения
	setMu sync.Mutex
	// usedBytes — суммарный размер ключей и значений в кэше
	usedBytes atomic.Int64
}

// New создаёт кэш на maxEntries записей с фиксированным TTL.
// TTL задаётся один раз при создании: параметр ttl в Set игнорируется.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{}
	c.lru = expirable.NewLRU[string, []byte](maxEntries, c.onEvict, ttl)
	return c
}

// onEvict вызывается LRU при вытеснении, удалении и истечении TTL.
func (c *Cache) onEvict(key string, value []byte) {
	c.usedBytes.Add(-int64(len(key) + len(value)))
}

// Get возвращает значение по ключу. Истёкшие записи считаются промахом.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return val, true, nil
}

// Set сохраняет значение. Параметр ttl игнорируется: у LRU единый TTL,
// заданный при создании кэша.
func (c *Cache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.setMu.Lock()
	defer c.setMu.Unlock()

	// Remove вместо замены: колбэк вытеснения спишет старый размер
	c.lru.Remove(key)
	c.lru.Add(key, val)
	c.usedBytes.Add(int64(len(key) + len(val)))
	return nil
}

// DeleteByPrefix удаляет все записи с указанным префиксом ключа.
// Возвращает число удалённых живых записей.
func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) (int64, error) {
	c.setMu.Lock()
	defer c.setMu.Unlock()

	var deleted int64
	for _, key := range c.lru.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		_, alive := c.lru.Peek(key)
		if c.lru.Remove(key) && alive {
			deleted++
		}
	}
	return deleted, nil
}

// CountByPrefix возвращает число живых записей с указанным префиксом.
func (c *Cache) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, key := range c.lru.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if _, alive := c.lru.Peek(key); alive {
			count++
		}
	}
	return count, nil
}

// MemoryUsedBytes возвращает суммарный размер хранимых ключей и значений.
func (c *Cache) MemoryUsedBytes(_ context.Context) (int64, error) {
	used := c.usedBytes.Load()
	if used < 0 {
		used = 0
	}
	return used, nil
}

// Ping всегда успешен: in-memory кэш доступен, пока жив процесс.
func (c *Cache) Ping(_ context.Context) error {
	return nil
}
