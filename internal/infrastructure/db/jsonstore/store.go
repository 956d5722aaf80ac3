// Package jsonstore persists whole JSON documents, one per logical collection.
//
// A Store reads and replaces its document as a unit; there are no partial
// updates. The backing resource is created from a default document on first
// read. Backends (file, Redis, MongoDB) only move raw bytes, so decoding and
// its failure modes are identical regardless of where the document lives.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/XploitFox/private-navigation-system/internal/metrics"
)

var (
	// ErrNotFound is returned by Backend.Load when the collection has no document.
	ErrNotFound = errors.New("document not found")
	// ErrParse wraps decode failures of persisted content.
	ErrParse = errors.New("malformed document")
)

// Backend moves raw document bytes in and out of durable storage.
type Backend interface {
	// Load returns ErrNotFound when the document does not exist.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Save replaces the document.
	Save(ctx context.Context, collection string, data []byte) error
	// Create stores data only if no document exists yet. An existing
	// document is left alone and is not an error.
	Create(ctx context.Context, collection string, data []byte) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// Store is a typed document of collection backed by a Backend.
type Store[T any] struct {
	backend    Backend
	collection string
	def        T
}

func NewStore[T any](backend Backend, collection string, def T) *Store[T] {
	return &Store[T]{backend: backend, collection: collection, def: def}
}

// Collection returns the logical collection name.
func (s *Store[T]) Collection() string { return s.collection }

// Read returns a freshly decoded copy of the document, creating it from the
// default first if it does not exist. Malformed content yields an error
// wrapping ErrParse.
func (s *Store[T]) Read(ctx context.Context) (T, error) {
	var zero T
	start := time.Now()
	defer s.observe("read", start)

	data, err := s.backend.Load(ctx, s.collection)
	if errors.Is(err, ErrNotFound) {
		if err := s.init(ctx); err != nil {
			s.count("read", err)
			return zero, err
		}
		data, err = s.backend.Load(ctx, s.collection)
	}
	if err != nil {
		s.count("read", err)
		return zero, fmt.Errorf("read %s: %w", s.collection, err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		s.count("read", err)
		return zero, fmt.Errorf("read %s: %w: %v", s.collection, ErrParse, err)
	}
	s.count("read", nil)
	return doc, nil
}

// Write serializes doc and replaces the stored document wholesale.
func (s *Store[T]) Write(ctx context.Context, doc T) error {
	start := time.Now()
	defer s.observe("write", start)

	data, err := encode(doc)
	if err != nil {
		s.count("write", err)
		return fmt.Errorf("write %s: encode: %w", s.collection, err)
	}
	if err := s.backend.Save(ctx, s.collection, data); err != nil {
		s.count("write", err)
		return fmt.Errorf("write %s: %w", s.collection, err)
	}
	s.count("write", nil)
	return nil
}

func (s *Store[T]) init(ctx context.Context) error {
	data, err := encode(s.def)
	if err != nil {
		s.count("init", err)
		return fmt.Errorf("init %s: encode default: %w", s.collection, err)
	}
	if err := s.backend.Create(ctx, s.collection, data); err != nil {
		s.count("init", err)
		return fmt.Errorf("init %s: %w", s.collection, err)
	}
	s.count("init", nil)
	return nil
}

func (s *Store[T]) count(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(s.collection, op, result).Inc()
}

func (s *Store[T]) observe(op string, start time.Time) {
	metrics.StoreOperationDuration.WithLabelValues(s.collection, op).Observe(time.Since(start).Seconds())
}

func encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
