// Package store implements the key-value blob store backing all studydesk
// collections. Collections round-trip through Get/Set as JSON; a missing or
// corrupt blob silently decodes to the empty collection so the application
// never crashes on malformed persisted state.
package store

import (
	"encoding/json"
	"reflect"
)

// Collection keys. One blob per entity collection.
const (
	KeyTasks    = "tasks"
	KeySessions = "sessions"
	KeyNotes    = "notes"
	KeyGoals    = "goals"
)

// Store is the persistence contract: synchronous get/set of JSON-serializable
// collections by key. Any backend satisfying it (files, embedded database)
// is interchangeable.
type Store interface {
	// Get decodes the blob stored under key into v. If no blob exists or it
	// cannot be decoded, v is left untouched and Get returns nil.
	Get(key string, v any) error

	// Set encodes v and stores it under key, replacing any previous blob.
	Set(key string, v any) error

	// Close releases backend resources.
	Close() error
}

// decodeBlob unmarshals data into a scratch value and copies it over v only
// when the whole blob decodes. json.Unmarshal can partially populate its
// destination before reporting a type error, which would break the
// leave-untouched contract if it wrote into v directly.
func decodeBlob(data []byte, v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return
	}
	rv.Elem().Set(scratch.Elem())
}
