package cash

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// Controller is the interface through which other extensions move
// funds, without direct access to the wallet bucket.
type Controller interface {
	Balance(db fount.ReadOnlyKVStore, addr fount.Address) (int64, error)
	MoveCoins(db fount.KVStore, src, dest fount.Address, amount int64) error
	IssueCoins(db fount.KVStore, dest fount.Address, amount int64) error
}

// CashController implements Controller over the wallet bucket.
type CashController struct {
	bucket orm.Bucket
}

var _ Controller = (*CashController)(nil)

func NewController() *CashController {
	return &CashController{bucket: NewWalletBucket()}
}

// Balance returns the funds held by the given account. A missing
// wallet is an empty wallet, not an error.
func (c *CashController) Balance(db fount.ReadOnlyKVStore, addr fount.Address) (int64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	var w Wallet
	switch err := c.bucket.One(db, walletKey(addr), &w); {
	case err == nil:
		return w.Funds, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// MoveCoins transfers the given amount from src to dest. It fails if
// src does not hold sufficient funds.
func (c *CashController) MoveCoins(db fount.KVStore, src, dest fount.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var sender Wallet
	if err := c.bucket.One(db, walletKey(src), &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrAmount, "empty account %s", src)
		}
		return err
	}
	if sender.Funds < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", sender.Funds, amount)
	}

	var recipient Wallet
	if err := c.bucket.One(db, walletKey(dest), &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}

	sender.Funds -= amount
	var err error
	if recipient.Funds, err = addInt64(recipient.Funds, amount); err != nil {
		return errors.Wrap(err, "recipient funds")
	}

	if err := c.bucket.Put(db, walletKey(src), &sender); err != nil {
		return err
	}
	return c.bucket.Put(db, walletKey(dest), &recipient)
}

// IssueCoins mints the given amount of base units into the destination
// wallet. Only genesis and test fixtures should use it; during regular
// operation funds enter the system through deposits.
func (c *CashController) IssueCoins(db fount.KVStore, dest fount.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive issue")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var recipient Wallet
	if err := c.bucket.One(db, walletKey(dest), &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	var err error
	if recipient.Funds, err = addInt64(recipient.Funds, amount); err != nil {
		return errors.Wrap(err, "recipient funds")
	}
	return c.bucket.Put(db, walletKey(dest), &recipient)
}

func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if b > 0 && sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	if b < 0 && sum > a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	return sum, nil
}
