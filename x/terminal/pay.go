package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/x/cycles"
)

// Pay deposits amount base units from the payer into the project and
// mints tickets for the beneficiary at the active cycle's weight, minus
// the reserved share. The mint must reach minTickets or the whole
// payment is rejected. It returns the number of the cycle the payment
// was made during.
func (c *Controller) Pay(db fount.CacheableKVStore, payer fount.Address, projectID int64, beneficiary fount.Address, amount, minTickets int64, preferUnstaked bool, memo string) (int64, error) {
	var number int64
	err := c.run(db, "pay", func(cache fount.CacheableKVStore) error {
		var err error
		number, err = c.pay(cache, payer, projectID, beneficiary, amount, minTickets, preferUnstaked, memo, true)
		return err
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

// pay is the unguarded payment path. The terminal itself uses it with
// moveFunds false to route tap fees and project-bound split cuts that
// are already in custody.
func (c *Controller) pay(db fount.CacheableKVStore, payer fount.Address, projectID int64, beneficiary fount.Address, amount, minTickets int64, preferUnstaked bool, memo string, moveFunds bool) (int64, error) {
	if amount <= 0 {
		return 0, errors.Wrap(errors.ErrAmount, "non-positive payment")
	}
	if err := beneficiary.Validate(); err != nil {
		return 0, errors.Wrap(err, "beneficiary")
	}

	cycle, err := c.currentCycle(db, projectID)
	if err != nil {
		return 0, err
	}
	if cycle.Config.PausePay {
		return 0, errors.Wrapf(ErrPaused, "pay on project %d", projectID)
	}

	params := PayParams{
		Payer:       payer,
		ProjectID:   projectID,
		Beneficiary: beneficiary,
		Amount:      amount,
		Memo:        memo,
	}

	weight := cycle.Weight
	access := AccessAllow
	var delegate Delegate
	if cycle.Config.UseDelegateOnPay {
		delegate = c.delegates[cycle.Config.Delegate]
		if delegate == nil {
			return 0, errors.Wrapf(errors.ErrNotFound, "delegate %q", cycle.Config.Delegate)
		}
		weight, params.Memo, access, err = delegate.PayHook(db, params, weight)
		if err != nil {
			return 0, errors.Wrap(err, "pay hook")
		}
		if access == AccessDisallow {
			return 0, errors.Wrapf(ErrRejected, "pay on project %d", projectID)
		}
	}

	weightedAmount, err := weighted(amount, weight)
	if err != nil {
		return 0, err
	}
	minted, err := mulDiv(weightedAmount, cycles.RateDenominator-int64(cycle.Config.ReservedRate), cycles.RateDenominator)
	if err != nil {
		return 0, err
	}
	if minted < minTickets {
		return 0, errors.Wrapf(ErrBelowMinimum, "minted %d < %d", minted, minTickets)
	}

	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	if a.Balance, err = addInt64(a.Balance, amount); err != nil {
		return 0, errors.Wrap(err, "project balance")
	}
	if moveFunds {
		if err := c.cash.MoveCoins(db, payer, c.addr, amount); err != nil {
			return 0, errors.Wrap(err, "deposit")
		}
	}

	switch {
	case minted > 0:
		if err := c.tickets.Mint(db, beneficiary, projectID, minted, preferUnstaked); err != nil {
			return 0, err
		}
	case weightedAmount > 0:
		// Fully reserved: nothing circulates now, the tracker owes the
		// whole weighted amount to the reserved allocation.
		if a.TicketTracker, err = subInt64(a.TicketTracker, weightedAmount); err != nil {
			return 0, errors.Wrap(ErrTrackerOverflow, "reserved deposit")
		}
	}

	if err := c.saveAccount(db, projectID, a); err != nil {
		return 0, err
	}

	if access == AccessAllowWithCallback {
		if err := delegate.PayCallback(db, params, minted); err != nil {
			return 0, errors.Wrap(err, "pay callback")
		}
	}

	c.note(PayRecord{
		CycleNumber: cycle.Number,
		ProjectID:   projectID,
		Payer:       payer,
		Beneficiary: beneficiary,
		Amount:      amount,
		Minted:      minted,
		Memo:        params.Memo,
	})
	return cycle.Number, nil
}
