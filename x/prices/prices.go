/*
Package prices implements the price feed registry. Every price is a
fraction describing how many currency units one base unit is worth. The
base currency itself always converts one to one.
*/
package prices

import (
	"github.com/tendermint/go-amino"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

var cdc = amino.NewCodec()

// Price is the stored feed value for one currency.
type Price struct {
	Rate fount.Fraction
}

var _ orm.Model = (*Price)(nil)

func (p *Price) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Price) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func (p *Price) Validate() error {
	if p.Rate.IsZero() {
		return errors.Wrap(errors.ErrModel, "zero rate")
	}
	return p.Rate.Validate()
}

// NewPriceBucket returns a bucket for price feed entries.
func NewPriceBucket() orm.Bucket {
	return orm.NewBucket("price")
}

// Store is the price feed registry.
type Store struct {
	bucket orm.Bucket
	base   string
}

// NewStore creates a registry treating the given currency as the base
// denomination.
func NewStore(base string) *Store {
	return &Store{
		bucket: NewPriceBucket(),
		base:   base,
	}
}

// Set records the feed value for a currency.
func (s *Store) Set(db fount.KVStore, currency string, rate fount.Fraction) error {
	if currency == "" {
		return errors.Wrap(errors.ErrEmpty, "currency")
	}
	if currency == s.base {
		return errors.Wrap(errors.ErrInput, "base currency price is fixed")
	}
	return s.bucket.Put(db, []byte(currency), &Price{Rate: rate})
}

// PriceOf returns how many units of the given currency one base unit
// is worth. Unknown currencies return ErrCurrency.
func (s *Store) PriceOf(db fount.ReadOnlyKVStore, currency string) (fount.Fraction, error) {
	if currency == s.base {
		return fount.Frac(1, 1), nil
	}
	var p Price
	if err := s.bucket.One(db, []byte(currency), &p); err != nil {
		if errors.ErrNotFound.Is(err) {
			return fount.Fraction{}, errors.Wrapf(errors.ErrCurrency, "no price feed for %q", currency)
		}
		return fount.Fraction{}, err
	}
	return p.Rate, nil
}
