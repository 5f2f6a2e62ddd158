package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a minimal key-value contract over the cache backend. Values are
// opaque byte payloads; ttl applies to the whole entry and is reapplied in
// full on every Set.
type Store interface {
	// Get returns the value for key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes value under key with the given TTL, replacing any
	// previous value and its remaining TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key under prefix. The sweep is a
	// scan-then-delete with no atomic barrier; a concurrent read may
	// observe a stale value inside the sweep window.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Close releases the backend connection.
	Close()
}

// Entries carry a schema version so a cache populated by an older binary is
// treated as a miss instead of being decoded into the wrong shape.
const schemaVersion = 1

type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope and serialises it.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: schemaVersion, Data: data})
}

// Decode unwraps an envelope into v. ok is false when the payload is from a
// different schema version or is not an envelope at all; both are misses,
// not errors.
func Decode(payload []byte, v any) (bool, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return false, nil
	}
	if env.Version != schemaVersion {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return false, err
	}
	return true, nil
}
