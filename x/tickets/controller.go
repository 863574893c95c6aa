package tickets

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// Controller is the surface other extensions use to mint, burn and
// move claim tokens.
type Controller interface {
	Mint(db fount.KVStore, beneficiary fount.Address, projectID int64, amount int64, preferUnstaked bool) error
	Burn(db fount.KVStore, holder fount.Address, projectID int64, amount int64, preferUnstaked bool) error
	Transfer(db fount.KVStore, src, dest fount.Address, projectID int64, amount int64) error
	TotalSupply(db fount.ReadOnlyKVStore, projectID int64) (int64, error)
	BalanceOf(db fount.ReadOnlyKVStore, holder fount.Address, projectID int64) (int64, error)
}

// TicketController implements Controller over the ticket buckets.
type TicketController struct {
	wallets orm.Bucket
	supply  orm.Bucket
}

var _ Controller = (*TicketController)(nil)

func NewController() *TicketController {
	return &TicketController{
		wallets: NewWalletBucket(),
		supply:  NewSupplyBucket(),
	}
}

// Mint creates the given number of tickets for the beneficiary and
// grows the project supply accordingly.
func (c *TicketController) Mint(db fount.KVStore, beneficiary fount.Address, projectID int64, amount int64, preferUnstaked bool) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive mint")
	}
	if err := beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}

	var w TicketWallet
	if err := c.wallets.One(db, holderKey(projectID, beneficiary), &w); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	var err error
	if preferUnstaked {
		if w.Unstaked, err = addInt64(w.Unstaked, amount); err != nil {
			return errors.Wrap(err, "unstaked balance")
		}
	} else {
		if w.Staked, err = addInt64(w.Staked, amount); err != nil {
			return errors.Wrap(err, "staked balance")
		}
	}

	var s TicketSupply
	if err := c.supply.One(db, projectKey(projectID), &s); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	if s.Total, err = addInt64(s.Total, amount); err != nil {
		return errors.Wrap(err, "total supply")
	}

	if err := c.wallets.Put(db, holderKey(projectID, beneficiary), &w); err != nil {
		return err
	}
	return c.supply.Put(db, projectKey(projectID), &s)
}

// Burn destroys the given number of tickets held by the holder. The
// preference flag selects which representation is burned first; the
// remainder is taken from the other one.
func (c *TicketController) Burn(db fount.KVStore, holder fount.Address, projectID int64, amount int64, preferUnstaked bool) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive burn")
	}

	var w TicketWallet
	if err := c.wallets.One(db, holderKey(projectID, holder), &w); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrAmount, "no tickets to burn")
		}
		return err
	}
	if w.Total() < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient tickets: %d < %d", w.Total(), amount)
	}

	first, second := &w.Staked, &w.Unstaked
	if preferUnstaked {
		first, second = &w.Unstaked, &w.Staked
	}
	if *first >= amount {
		*first -= amount
	} else {
		*second -= amount - *first
		*first = 0
	}

	var s TicketSupply
	if err := c.supply.One(db, projectKey(projectID), &s); err != nil {
		return err
	}
	if s.Total < amount {
		return errors.Wrapf(errors.ErrState, "supply below burn amount: %d < %d", s.Total, amount)
	}
	s.Total -= amount

	if err := c.wallets.Put(db, holderKey(projectID, holder), &w); err != nil {
		return err
	}
	return c.supply.Put(db, projectKey(projectID), &s)
}

// Transfer moves tickets between two holders without changing the
// supply. The unstaked balance is moved first.
func (c *TicketController) Transfer(db fount.KVStore, src, dest fount.Address, projectID int64, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	var from TicketWallet
	if err := c.wallets.One(db, holderKey(projectID, src), &from); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrAmount, "no tickets to transfer")
		}
		return err
	}
	if from.Total() < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient tickets: %d < %d", from.Total(), amount)
	}

	var to TicketWallet
	if err := c.wallets.One(db, holderKey(projectID, dest), &to); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}

	moveUnstaked := amount
	if from.Unstaked < amount {
		moveUnstaked = from.Unstaked
	}
	moveStaked := amount - moveUnstaked

	from.Unstaked -= moveUnstaked
	from.Staked -= moveStaked
	var err error
	if to.Unstaked, err = addInt64(to.Unstaked, moveUnstaked); err != nil {
		return errors.Wrap(err, "unstaked balance")
	}
	if to.Staked, err = addInt64(to.Staked, moveStaked); err != nil {
		return errors.Wrap(err, "staked balance")
	}

	if err := c.wallets.Put(db, holderKey(projectID, src), &from); err != nil {
		return err
	}
	return c.wallets.Put(db, holderKey(projectID, dest), &to)
}

// TotalSupply returns the number of tickets in circulation for the
// project. A project without any mint has supply zero.
func (c *TicketController) TotalSupply(db fount.ReadOnlyKVStore, projectID int64) (int64, error) {
	var s TicketSupply
	switch err := c.supply.One(db, projectKey(projectID), &s); {
	case err == nil:
		return s.Total, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// BalanceOf returns the combined staked and unstaked balance of the
// holder for the project.
func (c *TicketController) BalanceOf(db fount.ReadOnlyKVStore, holder fount.Address, projectID int64) (int64, error) {
	var w TicketWallet
	switch err := c.wallets.One(db, holderKey(projectID, holder), &w); {
	case err == nil:
		return w.Total(), nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
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
