package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// Redeem burns count of the holder's tickets and pays out a share of
// the project's overflow priced by the bonding curve. The proceeds must
// reach minReturned or the redemption is rejected. Redeeming to the
// terminal's own address burns without proceeds, which lets holders
// reduce supply unconditionally.
func (c *Controller) Redeem(db fount.CacheableKVStore, holder fount.Address, projectID int64, count, minReturned int64, destination fount.Address, preferUnstaked bool, memo string) (int64, error) {
	var proceeds int64
	err := c.run(db, "redeem", func(cache fount.CacheableKVStore) error {
		var err error
		proceeds, err = c.redeem(cache, holder, projectID, count, minReturned, destination, preferUnstaked, memo)
		return err
	})
	if err != nil {
		return 0, err
	}
	return proceeds, nil
}

func (c *Controller) redeem(db fount.CacheableKVStore, holder fount.Address, projectID int64, count, minReturned int64, destination fount.Address, preferUnstaked bool, memo string) (int64, error) {
	if count <= 0 {
		return 0, errors.Wrap(errors.ErrAmount, "non-positive redemption")
	}
	held, err := c.tickets.BalanceOf(db, holder, projectID)
	if err != nil {
		return 0, err
	}
	if held < count {
		return 0, errors.Wrapf(errors.ErrAmount, "insufficient tickets: %d < %d", held, count)
	}

	cycle, err := c.currentCycle(db, projectID)
	if err != nil {
		return 0, err
	}
	if cycle.Config.PauseRedeem {
		return 0, errors.Wrapf(ErrPaused, "redeem on project %d", projectID)
	}

	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}

	params := RedeemParams{
		Holder:      holder,
		ProjectID:   projectID,
		Count:       count,
		Destination: destination,
		Memo:        memo,
	}

	var proceeds int64
	access := AccessAllow
	var delegate Delegate
	// Redeeming to the terminal itself is a pure burn and skips the
	// curve and the delegate.
	if !destination.Equals(c.addr) {
		proceeds, err = c.claimableOf(db, cycle, a, projectID, count)
		if err != nil {
			return 0, err
		}
		if cycle.Config.UseDelegateOnRedeem {
			delegate = c.delegates[cycle.Config.Delegate]
			if delegate == nil {
				return 0, errors.Wrapf(errors.ErrNotFound, "delegate %q", cycle.Config.Delegate)
			}
			proceeds, params.Memo, access, err = delegate.RedeemHook(db, params, proceeds)
			if err != nil {
				return 0, errors.Wrap(err, "redeem hook")
			}
			if access == AccessDisallow {
				return 0, errors.Wrapf(ErrRejected, "redeem on project %d", projectID)
			}
			if proceeds < 0 {
				return 0, errors.Wrap(errors.ErrAmount, "negative delegate proceeds")
			}
		}
	}

	if proceeds < minReturned {
		return 0, errors.Wrapf(ErrBelowMinimum, "proceeds %d < %d", proceeds, minReturned)
	}
	if proceeds > a.Balance {
		return 0, errors.Wrapf(errors.ErrAmount, "proceeds above balance: %d > %d", proceeds, a.Balance)
	}
	if proceeds > 0 {
		if err := destination.Validate(); err != nil {
			return 0, errors.Wrap(err, "destination")
		}
	}

	if err := c.tickets.Burn(db, holder, projectID, count, preferUnstaked); err != nil {
		return 0, err
	}
	// Burned tickets can include unprocessed ones, so the tracker moves
	// down by the full count and may cross zero.
	if a.TicketTracker, err = subInt64(a.TicketTracker, count); err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "redemption")
	}
	if proceeds > 0 {
		a.Balance -= proceeds
		if err := c.cash.MoveCoins(db, c.addr, destination, proceeds); err != nil {
			return 0, errors.Wrap(err, "proceeds")
		}
	}
	if err := c.saveAccount(db, projectID, a); err != nil {
		return 0, err
	}

	if access == AccessAllowWithCallback {
		if err := delegate.RedeemCallback(db, params, proceeds); err != nil {
			return 0, errors.Wrap(err, "redeem callback")
		}
	}

	c.note(RedeemRecord{
		ProjectID:   projectID,
		Holder:      holder,
		Destination: destination,
		Count:       count,
		Proceeds:    proceeds,
		Memo:        params.Memo,
	})
	return proceeds, nil
}
