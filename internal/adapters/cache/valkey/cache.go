package valkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Cache implementa cache.Cache sobre un servidor valkey/redis.
type Cache struct {
	client valkey.Client
	prefix string
}

// Open conecta y hace PING. prefix se antepone a todas las keys.
func Open(ctx context.Context, addr, prefix string) (*Cache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("valkey address is empty")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	return New(client, prefix), nil
}

func New(client valkey.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	v := valkey.BinaryString(value)
	if ttl <= 0 {
		return c.client.Do(ctx, c.client.B().Set().Key(c.key(key)).Value(v).Build()).Error()
	}

	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	return c.client.Do(ctx, c.client.B().Set().Key(c.key(key)).Value(v).ExSeconds(secs).Build()).Error()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	return c.client.Do(ctx, c.client.B().Del().Key(full...).Build()).Error()
}

func (c *Cache) Close() {
	c.client.Close()
}
