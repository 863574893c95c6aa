package projects

import (
	"testing"

	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/founttest"
	"github.com/fount-one/fount/founttest/assert"
	"github.com/fount-one/fount/store"
)

func TestCreateAndLookup(t *testing.T) {
	db := store.MemStore()
	r := NewRegister()
	owner := founttest.NewAddress()

	id, err := r.Create(db, owner, "arcade")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)

	got, err := r.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, owner, got)

	// Identifiers are sequential.
	id2, err := r.Create(db, founttest.NewAddress(), "bakery")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2)
}

func TestHandleMustBeUnique(t *testing.T) {
	db := store.MemStore()
	r := NewRegister()

	_, err := r.Create(db, founttest.NewAddress(), "arcade")
	assert.Nil(t, err)
	_, err = r.Create(db, founttest.NewAddress(), "arcade")
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestOwnerOfMissingProject(t *testing.T) {
	db := store.MemStore()
	r := NewRegister()

	_, err := r.OwnerOf(db, 42)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTransferOwnership(t *testing.T) {
	db := store.MemStore()
	r := NewRegister()
	owner := founttest.NewAddress()
	next := founttest.NewAddress()

	id, err := r.Create(db, owner, "arcade")
	assert.Nil(t, err)

	// Only the owner may transfer.
	err = r.TransferOwnership(db, next, id, next)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, r.TransferOwnership(db, owner, id, next))
	got, err := r.OwnerOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, next, got)
}
