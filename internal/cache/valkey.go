package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	valkey "github.com/valkey-io/valkey-go"
)

// ValkeyConfig holds the connection settings for the valkey/redis backend.
type ValkeyConfig struct {
	Address  string
	Username string
	Password string
	DB       int
}

type valkeyStore struct {
	client valkey.Client
}

// NewValkey connects to a valkey/redis server and verifies it with a ping.
func NewValkey(cfg ValkeyConfig) (Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("cache: valkey address required")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{cfg.Address},
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		AlwaysRESP2:       true,
		ForceSingleClient: true,
		DisableCache:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: valkey ping: %w", err)
	}

	return &valkeyStore{client: client}, nil
}

func (s *valkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if errors.Is(err, valkey.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: valkey get: %w", err)
	}
	payload, err := resp.AsBytes()
	if err != nil {
		return nil, false, fmt.Errorf("cache: valkey get bytes: %w", err)
	}
	return payload, true, nil
}

func (s *valkeyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cmd := s.client.B().Set().Key(key).Value(string(value)).Px(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache: valkey set: %w", err)
	}
	return nil
}

func (s *valkeyStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("cache: valkey del: %w", err)
	}
	return nil
}

// DeleteByPrefix walks the keyspace with SCAN MATCH and deletes matches in
// batches. O(keys) and non-atomic; acceptable because entries are disposable.
func (s *valkeyStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}
	var cursor uint64
	for {
		resp := s.client.Do(ctx, s.client.B().Scan().Cursor(cursor).Match(prefix+"*").Count(256).Build())
		entry, err := resp.AsScanEntry()
		if err != nil {
			return fmt.Errorf("cache: valkey scan: %w", err)
		}
		if len(entry.Elements) > 0 {
			cmd := s.client.B().Del().Key(entry.Elements...).Build()
			if err := s.client.Do(ctx, cmd).Error(); err != nil {
				return fmt.Errorf("cache: valkey del batch: %w", err)
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (s *valkeyStore) Close() {
	s.client.Close()
}
