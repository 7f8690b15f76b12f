package cep

import (
	"context"
	"log/slog"

	"github.com/boraler/boraler-web/internal/storage"
	"github.com/boraler/boraler-web/internal/types"
)

// Cached wraps a Resolver with a storage.Storage address cache.
//
// Only successful lookups are stored. A broken cache never fails a
// lookup: read and write errors are logged and the upstream answer is used.
type Cached struct {
	next  Resolver
	store storage.Storage
	log   *slog.Logger
}

// NewCached returns a Resolver that consults store before next.
// A nil logger means slog.Default().
func NewCached(next Resolver, store storage.Storage, log *slog.Logger) *Cached {
	if log == nil {
		log = slog.Default()
	}
	return &Cached{next: next, store: store, log: log}
}

// Resolve implements Resolver.
func (c *Cached) Resolve(ctx context.Context, code string) (types.AddressLookupResult, error) {
	if !valid(code) {
		return types.AddressLookupResult{}, ErrNotFound
	}

	addr, found, err := c.store.GetAddress(code)
	if err != nil {
		c.log.Warn("address cache read failed", slog.String("cep", code), slog.String("error", err.Error()))
	} else if found {
		c.log.Debug("address cache hit", slog.String("cep", code))
		return addr, nil
	}

	addr, err = c.next.Resolve(ctx, code)
	if err != nil {
		return types.AddressLookupResult{}, err
	}

	if err := c.store.SaveAddress(code, addr); err != nil {
		c.log.Warn("address cache write failed", slog.String("cep", code), slog.String("error", err.Error()))
	}
	return addr, nil
}
