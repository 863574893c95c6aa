package store

import (
	"github.com/fount-one/fount/errors"
)

// MemStore returns a simple in-memory store useful for tests and for
// the reference single-process deployment. There is no persistence.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// EmptyKVStore never holds any data. It is used as the bottom layer
// under a cache wrap.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (e EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (e EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (e EmptyKVStore) Set(key, value []byte) error { return nil }

func (e EmptyKVStore) Delete(key []byte) error { return nil }

// NewBatch returns a batch that can write to this store later.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either a set or a delete waiting to be applied.
type Op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

// Apply performs the operation on the given writable store.
func (o Op) Apply(out SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrDatabase, "unknown operation kind: %d", o.kind)
	}
}

// NonAtomicBatch collects operations in order and applies them to the
// output store on Write. It provides no rollback of partially applied
// operations and is meant to be driven by a cache wrap that does.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch that writes to the given
// store.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{kind: setKind, key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{kind: delKind, key: key})
	return nil
}

// Write flushes all collected operations and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
