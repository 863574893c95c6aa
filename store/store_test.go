package store

import (
	"bytes"
	"testing"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("balance:1"), []byte("100")

	if err := db.Set(k, v); err != nil {
		t.Fatalf("set: %+v", err)
	}
	got, err := db.Get(k)
	if err != nil {
		t.Fatalf("get: %+v", err)
	}
	if !bytes.Equal(got, v) {
		t.Fatalf("want %q, got %q", v, got)
	}
	if has, _ := db.Has(k); !has {
		t.Fatal("expected key to exist")
	}

	if err := db.Delete(k); err != nil {
		t.Fatalf("delete: %+v", err)
	}
	if got, _ := db.Get(k); got != nil {
		t.Fatalf("deleted key returned %q", got)
	}
	if has, _ := db.Has(k); has {
		t.Fatal("deleted key reported as existing")
	}
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %+v", err)
	}

	// The parent must not see uncommitted changes.
	if got, _ := db.Get([]byte("b")); got != nil {
		t.Fatal("cache write leaked to the parent")
	}
	if got, _ := db.Get([]byte("a")); got == nil {
		t.Fatal("cache delete leaked to the parent")
	}

	if err := cache.Write(); err != nil {
		t.Fatalf("write: %+v", err)
	}

	if got, _ := db.Get([]byte("b")); !bytes.Equal(got, []byte("2")) {
		t.Fatalf("committed value missing, got %q", got)
	}
	if got, _ := db.Get([]byte("a")); got != nil {
		t.Fatal("committed delete not applied")
	}
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %+v", err)
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("a"), []byte("overwritten")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	cache.Discard()

	if got, _ := db.Get([]byte("a")); !bytes.Equal(got, []byte("1")) {
		t.Fatalf("discard corrupted parent, got %q", got)
	}
	if got, _ := db.Get([]byte("b")); got != nil {
		t.Fatal("discarded write leaked to the parent")
	}
}

func TestNestedCacheWrap(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	inner := outer.CacheWrap()

	if err := inner.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("set: %+v", err)
	}
	if err := inner.Write(); err != nil {
		t.Fatalf("inner write: %+v", err)
	}

	// Inner commit lands in the outer cache, not in the root store.
	if got, _ := outer.Get([]byte("k")); !bytes.Equal(got, []byte("v")) {
		t.Fatalf("outer cache missing inner commit, got %q", got)
	}
	if got, _ := db.Get([]byte("k")); got != nil {
		t.Fatal("inner commit bypassed the outer cache")
	}

	outer.Discard()
	if got, _ := db.Get([]byte("k")); got != nil {
		t.Fatal("outer discard did not drop inner writes")
	}
}
