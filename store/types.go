package store

import (
	fount "github.com/fount-one/fount"
)

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = fount.ReadOnlyKVStore
type KVStore = fount.KVStore
type CacheableKVStore = fount.CacheableKVStore
type KVCacheWrap = fount.KVCacheWrap
type SetDeleter = fount.SetDeleter
type Batch = fount.Batch
