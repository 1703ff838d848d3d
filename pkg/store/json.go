package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists indicates a duplicate of the entity is already stored
var ErrAlreadyExists = errors.New("already exists")

// loadJSON reads and unmarshals the value under (scope, key). A missing key
// yields the provided default instead of an error.
func loadJSON[T any](ctx context.Context, kv *Store, scope, key string, def T) (T, error) {
	raw, ok, err := kv.Load(ctx, scope, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def, fmt.Errorf("unmarshal %s/%s: %w", scope, key, err)
	}
	return v, nil
}

// saveJSON marshals v and stores it under (scope, key)
func saveJSON(ctx context.Context, kv *Store, scope, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", scope, key, err)
	}
	return kv.Save(ctx, scope, key, string(raw))
}
