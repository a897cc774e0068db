// Package memory is a process-local implementation of the storage contracts.
// It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// table keeps rows in insertion order so listings are stable.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return true
}

func (t *table[T]) each(fn func(T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}

// Store holds every collection behind one lock.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    *table[models.User]
	admins   *table[models.Admin]
	tokens   *table[models.Token]
	hotels   *table[models.Hotel]
	rooms    *table[models.Room]
	bookings *table[models.Booking]
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		users:    newTable[models.User](),
		admins:   newTable[models.Admin](),
		tokens:   newTable[models.Token](),
		hotels:   newTable[models.Hotel](),
		rooms:    newTable[models.Room](),
		bookings: newTable[models.Booking](),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func newID() string {
	return uuid.NewString()
}

func paginate[T any](items []T, page storage.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+page.Size, len(items))
	return items[start:end]
}
