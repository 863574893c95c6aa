package fount

// ReadOnlyKVStore is the subset of store functionality that cannot
// modify state. Use it in interfaces to declare read only access.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist. An error is returned
	// only on a storage failure.
	Get(key []byte) ([]byte, error)

	// Has checks for existence of a key.
	Has(key []byte) (bool, error)
}

// KVStore is the interface all stores must implement to be usable by
// buckets and controllers.
type KVStore interface {
	ReadOnlyKVStore

	// Set overwrites any previous value stored under the key.
	Set(key, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key []byte) error
}

// CacheableKVStore is a KVStore that can produce a scratch layer. All
// writes to the cache wrap are invisible to the underlying store until
// Write is called, and are dropped entirely by Discard.
//
// Every public terminal operation runs on its own cache wrap so that a
// failed operation leaves no partial state behind.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is the scratch layer produced by CacheWrap. It is itself
// cacheable, so operations can nest.
type KVCacheWrap interface {
	CacheableKVStore

	// Write flushes the cached writes to the underlying store.
	Write() error

	// Discard drops all cached writes.
	Discard()
}

// SetDeleter is the write subset of KVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch collects write operations to be applied together.
type Batch interface {
	SetDeleter
	Write() error
}
