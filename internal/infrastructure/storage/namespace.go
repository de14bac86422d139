package storage

import (
	"context"
	"strings"
)

// Separator joins a namespace and a key
const Separator = ":"

// Namespaced prefixes every key with a namespace. Close does not close the
// underlying store.
type Namespaced struct {
	store  Store
	prefix string
}

// Namespace scopes store to name
func Namespace(store Store, name string) *Namespaced {
	return &Namespaced{store: store, prefix: name + Separator}
}

// Get implements Store
func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

// Set implements Store
func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

// Delete implements Store
func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

// Keys implements Store, returning keys without the namespace
func (n *Namespaced) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := n.store.Keys(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, n.prefix)
	}
	return keys, nil
}

// Close implements Store
func (n *Namespaced) Close() error {
	return nil
}

// Profiles lists the namespaces that hold at least one key
func Profiles(ctx context.Context, store Store) ([]string, error) {
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, k := range keys {
		name, _, ok := strings.Cut(k, Separator)
		if !ok {
			continue
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out, nil
}
