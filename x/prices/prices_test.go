package prices

import (
	"testing"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/founttest/assert"
	"github.com/fount-one/fount/store"
)

func TestBaseCurrencyIsImplicit(t *testing.T) {
	db := store.MemStore()
	s := NewStore("BASE")

	got, err := s.PriceOf(db, "BASE")
	assert.Nil(t, err)
	assert.Equal(t, fount.Frac(1, 1), got)

	// The base price cannot be overwritten.
	assert.IsErr(t, errors.ErrInput, s.Set(db, "BASE", fount.Frac(2, 1)))
}

func TestSetAndGetPrice(t *testing.T) {
	db := store.MemStore()
	s := NewStore("BASE")

	assert.Nil(t, s.Set(db, "USD", fount.Frac(3, 2)))

	got, err := s.PriceOf(db, "USD")
	assert.Nil(t, err)
	assert.Equal(t, fount.Frac(3, 2), got)
}

func TestUnknownCurrency(t *testing.T) {
	db := store.MemStore()
	s := NewStore("BASE")

	_, err := s.PriceOf(db, "XYZ")
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestZeroRateRejected(t *testing.T) {
	db := store.MemStore()
	s := NewStore("BASE")

	assert.IsErr(t, errors.ErrModel, s.Set(db, "USD", fount.Fraction{}))
}
