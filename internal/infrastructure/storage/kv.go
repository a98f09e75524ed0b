// Package storage provides the key-value backends behind the collection
// store and the helpers that give callers fallback-on-error semantics.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"svw.info/birthdayos/internal/ports"
)

var (
	_ ports.KV = (*FS)(nil)
	_ ports.KV = (*Memory)(nil)
	_ ports.KV = (*SQL)(nil)
	_ ports.KV = (*Namespaced)(nil)
)

// Namespaced prefixes every key with "<namespace>:".
type Namespaced struct {
	ns    string
	inner ports.KV
}

func WithNamespace(ns string, kv ports.KV) *Namespaced {
	return &Namespaced{ns: ns, inner: kv}
}

func (n *Namespaced) key(k string) string {
	if n.ns == "" {
		return k
	}
	return n.ns + ":" + k
}

func (n *Namespaced) Get(key string) ([]byte, bool, error) { return n.inner.Get(n.key(key)) }
func (n *Namespaced) Set(key string, value []byte) error   { return n.inner.Set(n.key(key), value) }
func (n *Namespaced) Remove(key string) error              { return n.inner.Remove(n.key(key)) }

// GetRaw reads key and returns ok=false on a missing key or a backend error,
// which is logged.
func GetRaw(kv ports.KV, key string, logger *slog.Logger) ([]byte, bool) {
	data, ok, err := kv.Get(key)
	if err != nil {
		orDefault(logger).Warn("storage read failed", "key", key, "err", err)
		return nil, false
	}
	return data, ok
}

// GetJSON decodes the value stored under key, returning fallback when the key
// is missing, unreadable or not valid JSON for T.
func GetJSON[T any](kv ports.KV, key string, fallback T, logger *slog.Logger) T {
	data, ok := GetRaw(kv, key, logger)
	if !ok {
		return fallback
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		orDefault(logger).Warn("storage record corrupt, using fallback", "key", key, "err", err)
		return fallback
	}
	return out
}

// SetJSON encodes and writes value. Failures are logged and swallowed; the
// returned error is informational only.
func SetJSON(kv ports.KV, key string, value any, logger *slog.Logger) error {
	data, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("storage: encode %q: %w", key, err)
		orDefault(logger).Warn("storage write failed", "key", key, "err", err)
		return err
	}
	if err := kv.Set(key, data); err != nil {
		orDefault(logger).Warn("storage write failed", "key", key, "err", err)
		return err
	}
	return nil
}

// RemoveKey deletes key, logging and swallowing backend errors.
func RemoveKey(kv ports.KV, key string, logger *slog.Logger) error {
	if err := kv.Remove(key); err != nil {
		orDefault(logger).Warn("storage remove failed", "key", key, "err", err)
		return err
	}
	return nil
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
