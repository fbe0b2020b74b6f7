// Пакет rediscache — Redis-бэкенд кэша предсказаний.
// Обёртка над go-redis: хранение сериализованных результатов с TTL,
// очистка и подсчёт ключей по префиксу через SCAN, used_memory из INFO.
// Ошибки соединения возвращаются вызывающему: решение о деградации
// принимает сервисный слой.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanPageSize — размер страницы SCAN при обходе ключей.
const scanPageSize = 512

// Cache — клиент Redis для кэша предсказаний.
type Cache struct {
	rdb *redis.Client
}

// New создаёт клиент Redis. Соединение ленивое: доступность
// проверяется вызовом Ping.
func New(addr, password string, db int, timeout time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   1,
	})
	return &Cache{rdb: rdb}
}

// Get возвращает значение по ключу.
// (nil, false, nil) — ключа нет; ошибка — Redis недоступен.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("чтение из redis: %w", err)
	}
	return val, true, nil
}

// Set сохраняет значение с указанным TTL.
func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("запись в redis: %w", err)
	}
	return nil
}

// DeleteByPrefix удаляет все ключи с указанным префиксом.
// Обход через SCAN, без блокирующего KEYS. Возвращает число удалённых.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", scanPageSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("сканирование ключей redis: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("удаление ключей redis: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// CountByPrefix возвращает количество ключей с указанным префиксом.
func (c *Cache) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", scanPageSize).Result()
		if err != nil {
			return 0, fmt.Errorf("сканирование ключей redis: %w", err)
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

// MemoryUsedBytes возвращает used_memory из INFO memory.
func (c *Cache) MemoryUsedBytes(ctx context.Context) (int64, error) {
	info, err := c.rdb.Info(ctx, "memory").Result()
	if err != nil {
		return 0, fmt.Errorf("запрос INFO memory: %w", err)
	}
	for _, line := range strings.Split(info, "\r\n") {
		if after, ok := strings.CutPrefix(line, "used_memory:"); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(after), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("разбор used_memory: %w", err)
			}
			return n, nil
		}
	}
	return 0, errors.New("поле used_memory отсутствует в ответе INFO")
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis недоступен: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
