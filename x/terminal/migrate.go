package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// AddToBalance credits the project's balance without minting tickets,
// moving the funds from the caller into custody. When the directory
// does not home the project on this terminal the reserved position is
// voided by snapping the tracker to the supply, so a migrated-in
// balance cannot be claimed against stale reserved debt.
func (c *Controller) AddToBalance(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64) error {
	return c.run(db, "add to balance", func(cache fount.CacheableKVStore) error {
		return c.addToBalance(cache, caller, projectID, amount)
	})
}

func (c *Controller) addToBalance(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if projectID <= 0 {
		return errors.Wrap(errors.ErrInput, "project id")
	}

	a, err := c.account(db, projectID)
	if err != nil {
		return err
	}
	if a.Balance, err = addInt64(a.Balance, amount); err != nil {
		return errors.Wrap(err, "project balance")
	}
	if err := c.cash.MoveCoins(db, caller, c.addr, amount); err != nil {
		return errors.Wrap(err, "deposit")
	}

	var reset bool
	home, err := c.directory.TerminalOf(db, projectID)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		home = nil
	default:
		return err
	}
	if !home.Equals(c.addr) {
		supply, err := c.tickets.TotalSupply(db, projectID)
		if err != nil {
			return err
		}
		a.TicketTracker = supply
		reset = true
	}

	if err := c.saveAccount(db, projectID, a); err != nil {
		return err
	}
	c.note(AddToBalanceRecord{
		ProjectID:    projectID,
		Caller:       caller,
		Amount:       amount,
		TrackerReset: reset,
	})
	return nil
}

// Migrate moves the project's entire balance to another terminal and
// repoints the directory at it. Only the project owner may migrate and
// only to a terminal on the governance allow list. Pending reserved
// tickets are printed first so the position does not strand here.
// It returns the migrated amount.
func (c *Controller) Migrate(db fount.CacheableKVStore, caller fount.Address, projectID int64, to fount.Address) (int64, error) {
	var amount int64
	err := c.run(db, "migrate", func(cache fount.CacheableKVStore) error {
		var err error
		amount, err = c.migrate(cache, caller, projectID, to)
		return err
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

func (c *Controller) migrate(db fount.CacheableKVStore, caller fount.Address, projectID int64, to fount.Address) (int64, error) {
	if err := c.requireOwner(db, caller, projectID); err != nil {
		return 0, err
	}
	allowed, err := migrationAllowed(db, to)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, errors.Wrapf(ErrMigrationTarget, "terminal %s", to)
	}
	home, err := c.directory.TerminalOf(db, projectID)
	if err != nil {
		return 0, err
	}
	if !home.Equals(c.addr) {
		return 0, errors.Wrapf(errors.ErrState, "project %d is not homed here", projectID)
	}
	dest := c.terminals[string(to)]
	if dest == nil {
		return 0, errors.Wrapf(errors.ErrNotFound, "terminal %s", to)
	}

	if err := c.settleReserved(db, projectID); err != nil {
		return 0, err
	}

	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	amount := a.Balance
	a.Balance = 0
	if err := c.saveAccount(db, projectID, a); err != nil {
		return 0, err
	}
	if amount > 0 {
		// The destination pulls the funds from our custody wallet as
		// part of accepting the balance.
		if err := dest.AddToBalance(db, c.addr, projectID, amount); err != nil {
			return 0, errors.Wrap(err, "destination")
		}
	}
	if err := c.directory.SetTerminal(db, projectID, to); err != nil {
		return 0, err
	}

	c.note(MigrateRecord{
		ProjectID: projectID,
		To:        to,
		Amount:    amount,
	})
	return amount, nil
}
