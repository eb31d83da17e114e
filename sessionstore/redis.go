package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/broady/passwords"
)

// DefaultRedisPrefix namespaces session keys in a shared database.
const DefaultRedisPrefix = "passwords:session:"

// RedisStore keeps sessions as JSON strings in Redis. Entries are kept
// until deleted unless WithTTL sets an expiry. A session past its keepalive
// interval still holds the credentials Resume needs to log in again.
type RedisStore struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix overrides DefaultRedisPrefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithTTL expires every entry after ttl. Zero, the default, keeps entries
// until deleted.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client rueidis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DialRedis connects to addr and returns a store over the new client.
func DialRedis(addr, username, password string, opts ...RedisOption) (*RedisStore, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Username:     username,
		Password:     password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sessionstore: connect redis %s: %w", addr, err)
	}
	return NewRedisStore(client, opts...), nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() {
	s.client.Close()
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Load(ctx context.Context, key string) (passwords.SessionState, error) {
	var state passwords.SessionState
	if err := checkKey(key); err != nil {
		return state, err
	}
	cmd := s.client.B().Get().Key(s.key(key)).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return state, ErrNotFound
		}
		return state, fmt.Errorf("sessionstore: redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("sessionstore: decode %s: %w", key, err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, state passwords.SessionState) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sessionstore: encode %s: %w", key, err)
	}

	var cmd rueidis.Completed
	if s.ttl > 0 {
		cmd = s.client.B().Set().Key(s.key(key)).Value(string(data)).Ex(s.ttl).Build()
	} else {
		cmd = s.client.B().Set().Key(s.key(key)).Value(string(data)).Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("sessionstore: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	cmd := s.client.B().Del().Key(s.key(key)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("sessionstore: redis del %s: %w", key, err)
	}
	return nil
}
