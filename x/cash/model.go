package cash

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// Wallet holds the settlement-asset balance of a single account,
// denominated in base units.
type Wallet struct {
	Funds int64
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error {
	if w.Funds < 0 {
		return errors.Wrap(errors.ErrModel, "negative funds")
	}
	return nil
}

// NewWalletBucket returns a bucket for managing wallet state.
func NewWalletBucket() orm.Bucket {
	return orm.NewBucket("wallet")
}

func walletKey(addr fount.Address) []byte {
	return []byte(addr)
}
