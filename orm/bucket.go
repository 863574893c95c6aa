// Package orm provides a minimal keyed-record layer on top of the raw
// key value store. A bucket namespaces all of its records with its
// name, validates models before writing and handles serialization via
// each model's Persistent implementation.
package orm

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	fount.Persistent
	Validate() error
}

// Bucket namespaces a class of models inside a shared key value store.
// It is cheap to create and carries no state besides its prefix.
type Bucket struct {
	prefix []byte
}

// NewBucket creates a bucket with the given name. The name becomes
// part of every database key and must not change once data is written.
func NewBucket(name string) Bucket {
	return Bucket{prefix: []byte(name + ":")}
}

// DBKey returns the full database key for the given model key.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One loads a single model by its key into dest. ErrNotFound is
// returned if no record is stored under the key.
func (b Bucket) One(db fount.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "bucket get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %T", dest)
	}
	return nil
}

// Has returns true if a record is stored under the key.
func (b Bucket) Has(db fount.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and stores the model under the given key.
func (b Bucket) Put(db fount.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %T", m)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the record stored under the key. Deleting a missing
// record is not an error.
func (b Bucket) Delete(db fount.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}
