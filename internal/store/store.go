// Package store implements all database access. Functions take a context
// and a database handle; read helpers return (nil, nil) for missing rows,
// while state-changing item operations return the sentinel errors below so
// callers can tell ownership misses from washing-state conflicts.
package store

import "errors"

// ErrNotFound means the referenced row does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("not found")

// ErrWashing means the operation conflicts with the item's washing state:
// a washing item was marked worn, or washed again.
var ErrWashing = errors.New("item is being washed")
