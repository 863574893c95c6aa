package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/x/cycles"
	"github.com/fount-one/fount/x/splits"
)

// TapResult reports what a withdrawal did, all amounts in base units.
type TapResult struct {
	CycleNumber int64
	Converted   int64
	Fee         int64
	Distributed int64
	Leftover    int64
}

// Tap withdraws amount, denominated in the cycle's currency, from the
// project's balance. The protocol fee is taken off the top and paid
// into the protocol project on behalf of the tapping project's owner.
// The remainder goes to the configured payout splits, anything they do
// not claim to the owner. The converted base amount must reach
// minConverted or the whole withdrawal is rejected.
func (c *Controller) Tap(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64, currency string, minConverted int64) (TapResult, error) {
	var res TapResult
	err := c.run(db, "tap", func(cache fount.CacheableKVStore) error {
		var err error
		res, err = c.tap(cache, caller, projectID, amount, currency, minConverted)
		return err
	})
	if err != nil {
		return TapResult{}, err
	}
	return res, nil
}

func (c *Controller) tap(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64, currency string, minConverted int64) (TapResult, error) {
	var res TapResult
	cycle, err := c.cycles.RegisterTap(db, projectID, amount)
	if err != nil {
		return res, err
	}
	if cycle == nil {
		// A project without a funding cycle has nothing to tap. This is
		// a no-op, not an error.
		return res, nil
	}
	if cycle.Config.PauseTap {
		return res, errors.Wrapf(ErrPaused, "tap on project %d", projectID)
	}
	if currency != cycle.Currency {
		return res, errors.Wrapf(errors.ErrCurrency, "cycle is denominated in %q, not %q", cycle.Currency, currency)
	}
	res.CycleNumber = cycle.Number

	price, err := c.prices.PriceOf(db, cycle.Currency)
	if err != nil {
		return res, err
	}
	converted, err := convertToBase(amount, price)
	if err != nil {
		return res, err
	}
	if converted < minConverted {
		return res, errors.Wrapf(ErrBelowMinimum, "converted %d < %d", converted, minConverted)
	}
	if converted <= 0 {
		return res, errors.Wrap(errors.ErrAmount, "tap converts to nothing")
	}
	res.Converted = converted

	a, err := c.account(db, projectID)
	if err != nil {
		return res, err
	}
	if a.Balance < converted {
		return res, errors.Wrapf(errors.ErrAmount, "insufficient balance: %d < %d", a.Balance, converted)
	}
	a.Balance -= converted
	if err := c.saveAccount(db, projectID, a); err != nil {
		return res, err
	}

	owner, err := c.projects.OwnerOf(db, projectID)
	if err != nil {
		return res, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return res, err
	}
	// The fee is carved out so that the net amount carries the fee rate
	// on top: net = converted * 200 / (fee + 200). The protocol project
	// does not pay fees to itself.
	if cycle.Fee > 0 && projectID != conf.ProtocolProjectID {
		net, err := mulDiv(converted, cycles.RateDenominator, int64(cycle.Fee)+cycles.RateDenominator)
		if err != nil {
			return res, err
		}
		if fee := converted - net; fee > 0 {
			if _, err := c.pay(db, c.addr, conf.ProtocolProjectID, owner, fee, 0, false, "fee", false); err != nil {
				return res, errors.Wrap(err, "fee")
			}
			res.Fee = fee
		}
	}

	distributed, err := c.distributePayouts(db, cycle, converted-res.Fee)
	if err != nil {
		return res, err
	}
	res.Distributed = distributed

	if leftover := converted - res.Fee - distributed; leftover > 0 {
		if err := c.cash.MoveCoins(db, c.addr, owner, leftover); err != nil {
			return res, errors.Wrap(err, "leftover")
		}
		res.Leftover = leftover
	}

	c.note(TapRecord{
		CycleNumber: cycle.Number,
		ProjectID:   projectID,
		Caller:      caller,
		Owner:       owner,
		Amount:      amount,
		Currency:    currency,
		Converted:   converted,
		Fee:         res.Fee,
		Distributed: distributed,
		Leftover:    res.Leftover,
	})
	return res, nil
}

// distributePayouts pays each configured payout split its cut of the
// total. Cuts route to a plain beneficiary, to another project as a
// deposit, or to a registered allocator. Truncation dust stays with the
// caller as leftover.
func (c *Controller) distributePayouts(db fount.CacheableKVStore, cycle *cycles.Cycle, total int64) (int64, error) {
	if total <= 0 {
		return 0, nil
	}
	list, err := c.splits.PayoutSplits(db, cycle.ProjectID, cycle.ConfigID)
	if err != nil {
		return 0, err
	}

	var distributed int64
	for _, sp := range list {
		cut, err := mulDiv(total, int64(sp.Percent), splits.PercentDenominator)
		if err != nil {
			return 0, err
		}
		if cut == 0 {
			continue
		}

		switch {
		case sp.Allocator != "":
			alloc := c.allocators[sp.Allocator]
			if alloc == nil {
				return 0, errors.Wrapf(errors.ErrNotFound, "allocator %q", sp.Allocator)
			}
			if err := c.cash.MoveCoins(db, c.addr, alloc.Address(), cut); err != nil {
				return 0, errors.Wrap(err, "allocator cut")
			}
			if err := alloc.Allocate(db, cycle.ProjectID, sp, cut); err != nil {
				return 0, errors.Wrap(err, "allocate")
			}
		case sp.ProjectID != 0:
			if err := c.payProject(db, cycle, sp, cut); err != nil {
				return 0, err
			}
		default:
			if err := c.cash.MoveCoins(db, c.addr, sp.Beneficiary, cut); err != nil {
				return 0, errors.Wrap(err, "split cut")
			}
		}

		distributed += cut
		c.note(PayoutSplitRecord{
			ProjectID:   cycle.ProjectID,
			CycleNumber: cycle.Number,
			Split:       sp,
			Amount:      cut,
		})
	}
	return distributed, nil
}

// payProject routes a payout split cut as a deposit into the target
// project, on whichever terminal the directory homes it.
func (c *Controller) payProject(db fount.CacheableKVStore, cycle *cycles.Cycle, sp splits.Split, cut int64) error {
	beneficiary := sp.Beneficiary
	if len(beneficiary) == 0 {
		owner, err := c.projects.OwnerOf(db, sp.ProjectID)
		if err != nil {
			return errors.Wrap(err, "split target owner")
		}
		beneficiary = owner
	}

	home, err := c.directory.TerminalOf(db, sp.ProjectID)
	if err != nil {
		return errors.Wrapf(err, "split target project %d", sp.ProjectID)
	}
	if home.Equals(c.addr) {
		_, err := c.pay(db, c.addr, sp.ProjectID, beneficiary, cut, 0, sp.PreferUnstaked, "split", false)
		return err
	}

	other := c.terminals[string(home)]
	if other == nil {
		return errors.Wrapf(errors.ErrNotFound, "terminal %s", home)
	}
	_, err = other.Pay(db, c.addr, sp.ProjectID, beneficiary, cut, 0, sp.PreferUnstaked, "split")
	return err
}
