package kvstore

import (
	"context"
	"strings"
)

// namespaced prefixes every key so multiple owners can share one Store.
// Clear only removes keys under the prefix when the underlying store is a
// MemoryStore; for other stores it is a no-op, since an owner must not
// assume exclusivity over the adapter as a whole.
type namespaced struct {
	store  Store
	prefix string
}

// Namespaced wraps store so all keys are read and written under prefix.
func Namespaced(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix + "/"}
}

func (n *namespaced) GetItem(ctx context.Context, key string) (string, error) {
	return n.store.GetItem(ctx, n.prefix+key)
}

func (n *namespaced) SetItem(ctx context.Context, key string, value string) error {
	return n.store.SetItem(ctx, n.prefix+key, value)
}

func (n *namespaced) RemoveItem(ctx context.Context, key string) error {
	return n.store.RemoveItem(ctx, n.prefix+key)
}

func (n *namespaced) Clear(ctx context.Context) error {
	mem, ok := n.store.(*MemoryStore)
	if !ok {
		return nil
	}
	mem.mu.Lock()
	defer mem.mu.Unlock()
	for k := range mem.items {
		if strings.HasPrefix(k, n.prefix) {
			delete(mem.items, k)
		}
	}
	return nil
}
