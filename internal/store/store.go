// Package store persists named collections as whole JSON documents.
//
// Every read loads the full collection and every write replaces it. A
// Collection serialises its own read-modify-write cycles with a mutex;
// nothing coordinates writers across collections or across processes.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/noah-isme/gema-activities-api/internal/models"
)

// Collection names used by the application.
const (
	CollectionUsers      = "users"
	CollectionActivities = "activities"
	CollectionSignups    = "signups"
	CollectionAttendance = "attendance"
	CollectionFeedback   = "feedback"
)

var emptyCollection = []byte("[]")

// Backend reads and writes raw collection documents. Read must create the
// collection as an empty JSON array when it does not exist yet.
type Backend interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, payload []byte) error
}

// Collection is a typed view of one named collection.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.RWMutex
}

// NewCollection binds a collection name to a backend.
func NewCollection[T any](name string, backend Backend) *Collection[T] {
	return &Collection[T]{name: name, backend: backend}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns every record in the collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.load(ctx)
}

// Save replaces the whole collection with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update loads the collection, applies fn and saves the result while holding
// the collection lock. When fn returns an error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}

	return c.save(ctx, updated)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	payload, err := c.backend.Read(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("read %s collection: %w", c.name, err)
	}

	records := make([]T, 0)
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return records, nil
	}

	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}

	payload, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", c.name, err)
	}

	if err := c.backend.Write(ctx, c.name, payload); err != nil {
		return fmt.Errorf("write %s collection: %w", c.name, err)
	}
	return nil
}

// Store groups the application collections over a single backend.
type Store struct {
	Users      *Collection[models.User]
	Activities *Collection[models.Activity]
	Signups    *Collection[models.Signup]
	Attendance *Collection[models.Attendance]
	Feedback   *Collection[models.Feedback]
}

// New creates the application collections on top of backend.
func New(backend Backend) *Store {
	return &Store{
		Users:      NewCollection[models.User](CollectionUsers, backend),
		Activities: NewCollection[models.Activity](CollectionActivities, backend),
		Signups:    NewCollection[models.Signup](CollectionSignups, backend),
		Attendance: NewCollection[models.Attendance](CollectionAttendance, backend),
		Feedback:   NewCollection[models.Feedback](CollectionFeedback, backend),
	}
}
