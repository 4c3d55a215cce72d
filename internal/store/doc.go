// Package store defines the persistence interfaces for decks and users,
// together with the error taxonomy shared by all store implementations.
//
// The file-backed implementation lives in internal/platform/filestore.
// Interfaces are defined here so that services depend on the contract,
// not on the storage backend.
package store
