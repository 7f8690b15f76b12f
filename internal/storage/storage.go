// Package storage defines the Storage interface: the contract any local
// cache backend must satisfy.
//
// BoraLer keeps no user data of its own; everything durable lives in the
// remote backend. What is stored locally is a cache of successful postal
// code lookups, so repeated signups from the same street do not hit
// ViaCEP every time.
//
// Handlers and resolvers depend only on this interface, so tests can pass
// an in-memory fake and production can use the sqlite implementation.
package storage

import "github.com/boraler/boraler-web/internal/types"

// Storage is the address cache contract.
type Storage interface {
	// GetAddress returns the cached address for an 8-digit code.
	// found is false (with a nil error) when the code is not cached.
	GetAddress(code string) (addr types.AddressLookupResult, found bool, err error)

	// SaveAddress inserts or replaces the cached address for code.
	SaveAddress(code string, addr types.AddressLookupResult) error

	// Close releases the underlying resources.
	Close() error
}
