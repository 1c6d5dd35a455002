// Package repo holds the per-entity repositories. Each repository fetches a
// full collection snapshot, runs the normalizer over every record, and
// performs create/update against the remote store. Snapshots are read copies;
// they are refetched after any mutation rather than patched in place.
package repo

import (
	"context"
	"errors"

	"pumpadmin/db"
)

// Collection names in the remote store.
const (
	UsersCollection    = "users"
	TeamsCollection    = "teams"
	PumpsCollection    = "petrolPumps"
	RequestsCollection = "pumpRequests"
)

// Store is the slice of the remote document store the repositories use.
// *db.FirestoreDB satisfies it; tests substitute an in-memory fake.
type Store interface {
	ListAll(ctx context.Context, collection, orderBy string) ([]db.Document, error)
	Query(ctx context.Context, collection, field string, value interface{}) ([]db.Document, error)
	Get(ctx context.Context, collection, id string) (db.Document, error)
	Create(ctx context.Context, collection, id string, data map[string]interface{}) error
	Update(ctx context.Context, collection, id string, data map[string]interface{}) error
}

var (
	// ErrDuplicateMobile means another user already holds this mobile number.
	ErrDuplicateMobile = errors.New("mobile number is already registered")
	// ErrDuplicateEmail means another user already holds this email address.
	ErrDuplicateEmail = errors.New("email address is already registered")
	// ErrNotFound means the requested document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition means a request was asked to leave a terminal state.
	ErrInvalidTransition = errors.New("request is no longer pending")
)
