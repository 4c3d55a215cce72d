// Package filestore implements the store interfaces on top of a plain
// directory of files: one file per deck named after the deck, plus a single
// Users.txt for the user list.
//
// Files hold a versioned JSON envelope so the format can evolve without the
// class-identity-coupled failures of the legacy object serialization. All
// writes go through a write-temp-then-rename discipline, so a crash mid-write
// never corrupts the previous valid file. That rename is the only durability
// guarantee; there is no file locking, and the design assumes a single local
// process (documented limitation).
package filestore
