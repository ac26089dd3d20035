package store

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/moneytree/internal/model"
)

// DefaultKey is the fixed key holding the snapshot. It matches the browser
// app's localStorage key so exported data lines up.
const DefaultKey = "money-tree-data"

// corruptSuffix names the key a rejected blob is copied to.
const corruptSuffix = ".corrupt"

// PersistenceError reports a failed load or save against the KV.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Snapshots reads and writes the whole AppState under one key.
type Snapshots struct {
	kv  KV
	key string
}

// NewSnapshots returns an adapter over kv. An empty key means DefaultKey.
func NewSnapshots(kv KV, key string) *Snapshots {
	if key == "" {
		key = DefaultKey
	}
	return &Snapshots{kv: kv, key: key}
}

// Key returns the key snapshots are stored under.
func (s *Snapshots) Key() string {
	return s.key
}

// CorruptKey returns the key a rejected snapshot is preserved under.
func (s *Snapshots) CorruptKey() string {
	return s.key + corruptSuffix
}

// Load returns the stored snapshot. A missing snapshot is an empty state.
// A corrupt one is preserved under CorruptKey and an empty state is
// returned along with a *PersistenceError.
func (s *Snapshots) Load() (model.AppState, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return model.EmptyState(), &PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	if !ok || len(data) == 0 {
		return model.EmptyState(), nil
	}

	st, err := Decode(data)
	if err != nil {
		if backupErr := s.kv.Put(s.CorruptKey(), data); backupErr != nil {
			err = errors.Join(err, fmt.Errorf("preserving corrupt snapshot: %w", backupErr))
		}
		return model.EmptyState(), &PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	return st, nil
}

// Save writes st synchronously.
func (s *Snapshots) Save(st model.AppState) error {
	data, err := Encode(st)
	if err != nil {
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	if err := s.kv.Put(s.key, data); err != nil {
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	return nil
}
