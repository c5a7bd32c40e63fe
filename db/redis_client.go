package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get on a cache miss.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the methods available in the RedisClient
type RedisClient interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Keys(pattern string) ([]string, error)
	Del(keys ...string) error
	GetContext() context.Context
	Ping() error
	Close() error
}
