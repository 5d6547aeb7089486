package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendNone   = "none"

	DefaultTTL = 5 * time.Minute
)

var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache stores encoded analytics results keyed by Key. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Close() error
}

type Options struct {
	Backend    string
	TTL        time.Duration
	MaxEntries int
	RedisURL   string
	BadgerPath string
	Logger     *logrus.Logger
}

func New(options Options) (Cache, error) {
	ttl := options.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch strings.ToLower(strings.TrimSpace(options.Backend)) {
	case "", BackendMemory:
		return NewMemoryCache(ttl, options.MaxEntries), nil
	case BackendRedis:
		return NewRedisCache(options.RedisURL, ttl)
	case BackendBadger:
		return NewBadgerCache(options.BadgerPath, ttl, options.Logger)
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, options.Backend)
	}
}

// UserPrefix is the key prefix shared by every cached result of one user.
func UserPrefix(userID uint) string {
	return fmt.Sprintf("user:%d:", userID)
}

// Key builds user:{id}:{endpoint}:{start}:{end} with sorted k=v extras
// appended, so identical queries map to identical keys.
func Key(userID uint, endpoint string, start time.Time, end time.Time, extras map[string]string) string {
	var builder strings.Builder
	builder.WriteString(UserPrefix(userID))
	builder.WriteString(endpoint)
	builder.WriteString(":")
	builder.WriteString(start.UTC().Format(time.RFC3339Nano))
	builder.WriteString(":")
	builder.WriteString(end.UTC().Format(time.RFC3339Nano))

	if len(extras) == 0 {
		return builder.String()
	}

	names := make([]string, 0, len(extras))
	for name := range extras {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+extras[name])
	}
	builder.WriteString(":")
	builder.WriteString(strings.Join(pairs, ","))
	return builder.String()
}

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []byte) error {
	return nil
}

func (Noop) InvalidatePrefix(context.Context, string) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
