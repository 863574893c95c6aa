package terminal

import (
	"math"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/x/cycles"
	"github.com/fount-one/fount/x/splits"
)

// PrintReservedTickets mints every reserved ticket the project owes
// under the active cycle's reserved rate, distributes them to the
// configured ticket splits and mints the rest to the project owner.
// Anyone may call it. It returns the number of tickets printed, zero
// when nothing was owed.
func (c *Controller) PrintReservedTickets(db fount.CacheableKVStore, projectID int64, memo string) (int64, error) {
	var count int64
	err := c.run(db, "print reserved tickets", func(cache fount.CacheableKVStore) error {
		var err error
		count, err = c.printReserved(cache, projectID, memo)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Controller) printReserved(db fount.CacheableKVStore, projectID int64, memo string) (int64, error) {
	cycle, err := c.currentCycle(db, projectID)
	if err != nil {
		return 0, err
	}
	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	supply, err := c.tickets.TotalSupply(db, projectID)
	if err != nil {
		return 0, err
	}
	amount, err := reservedTickets(a.TicketTracker, cycle.Config.ReservedRate, supply)
	if err != nil {
		return 0, err
	}
	if amount > math.MaxInt64-supply {
		return 0, errors.Wrapf(ErrTrackerOverflow, "printing %d on supply %d", amount, supply)
	}

	// After printing, every circulating ticket is processed.
	a.TicketTracker = supply + amount
	if err := c.saveAccount(db, projectID, a); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	owner, err := c.projects.OwnerOf(db, projectID)
	if err != nil {
		return 0, err
	}

	list, err := c.splits.TicketSplits(db, projectID, cycle.ConfigID)
	if err != nil {
		return 0, err
	}
	leftover := amount
	for _, sp := range list {
		cut, err := mulDiv(amount, int64(sp.Percent), splits.PercentDenominator)
		if err != nil {
			return 0, err
		}
		if cut == 0 {
			continue
		}
		beneficiary := sp.Beneficiary
		if len(beneficiary) == 0 {
			beneficiary = owner
		}
		if err := c.tickets.Mint(db, beneficiary, projectID, cut, sp.PreferUnstaked); err != nil {
			return 0, err
		}
		leftover -= cut
		c.note(TicketSplitRecord{
			ProjectID: projectID,
			ConfigID:  cycle.ConfigID,
			Split:     sp,
			Count:     cut,
		})
	}
	if leftover > 0 {
		if err := c.tickets.Mint(db, owner, projectID, leftover, false); err != nil {
			return 0, err
		}
	}

	c.note(PrintReservedRecord{
		ProjectID: projectID,
		Count:     amount,
		Owner:     owner,
		OwnerCut:  leftover,
		Memo:      memo,
	})
	return amount, nil
}

// PrintPreminedTickets mints tickets for the beneficiary before the
// project has seen a real deposit, at the base weight or an explicit
// override. The window closes for good the moment any ticket outside
// the premine exists. Only the project owner may premine. It returns
// the number of tickets printed.
func (c *Controller) PrintPreminedTickets(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64, currency string, weight fount.Fraction, beneficiary fount.Address, preferUnstaked bool, memo string) (int64, error) {
	var count int64
	err := c.run(db, "print premined tickets", func(cache fount.CacheableKVStore) error {
		var err error
		count, err = c.printPremined(cache, caller, projectID, amount, currency, weight, beneficiary, preferUnstaked, memo)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Controller) printPremined(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64, currency string, weight fount.Fraction, beneficiary fount.Address, preferUnstaked bool, memo string) (int64, error) {
	if amount <= 0 {
		return 0, errors.Wrap(errors.ErrAmount, "non-positive premine")
	}
	if err := beneficiary.Validate(); err != nil {
		return 0, errors.Wrap(err, "beneficiary")
	}
	if err := c.requireOwner(db, caller, projectID); err != nil {
		return 0, err
	}

	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	supply, err := c.tickets.TotalSupply(db, projectID)
	if err != nil {
		return 0, err
	}
	if supply != a.Preconfigured || a.TicketTracker != a.Preconfigured {
		return 0, errors.Wrapf(ErrPremineClosed, "project %d", projectID)
	}

	price, err := c.prices.PriceOf(db, currency)
	if err != nil {
		return 0, err
	}
	converted, err := convertToBase(amount, price)
	if err != nil {
		return 0, err
	}
	w := weight
	if w.IsZero() {
		w = cycles.BaseWeight
	}
	count, err := weighted(converted, w)
	if err != nil {
		return 0, err
	}
	if count <= 0 {
		return 0, errors.Wrap(errors.ErrAmount, "premine too small to mint")
	}

	if err := c.tickets.Mint(db, beneficiary, projectID, count, preferUnstaked); err != nil {
		return 0, err
	}
	// Premined tickets count as processed, the tracker follows them.
	if a.TicketTracker, err = addInt64(a.TicketTracker, count); err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "premine")
	}
	if a.Preconfigured, err = addInt64(a.Preconfigured, count); err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "premine")
	}
	if err := c.saveAccount(db, projectID, a); err != nil {
		return 0, err
	}

	c.note(PrintPreminedRecord{
		ProjectID:   projectID,
		Beneficiary: beneficiary,
		Amount:      amount,
		Currency:    currency,
		Count:       count,
		Memo:        memo,
	})
	return count, nil
}
