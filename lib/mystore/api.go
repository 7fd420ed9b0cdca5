package mystore

import (
	"context"
)

type ctxTransactionKey struct{}

// Filter uses datastore semantics: Compare is one of "=", "<", "<=", ">", ">=".
type Filter struct {
	Field   string
	Compare string
	Value   any
}

type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
	// Query returns the entities matching all filters, ordered by orderByField ("-Field" for descending).
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New returns a store backed by Google Cloud Datastore when projectID is set and an in-memory store otherwise.
func New[T any](c context.Context, projectID string) (Store[T], func(), error) {
	if projectID != "" {
		return newGcloudStore[T](c, projectID)
	}

	return NewInMemoryStore[T](c)
}
