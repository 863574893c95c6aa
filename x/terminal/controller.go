package terminal

import (
	"sync"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
	"github.com/fount-one/fount/x/cash"
	"github.com/fount-one/fount/x/cycles"
)

// Controller is one funding terminal instance. All public operations
// are atomic: they run on a cache wrap of the supplied store and commit
// only on success. A mutex rejects reentrant calls from delegates and
// allocators instead of deadlocking on them.
type Controller struct {
	mu      sync.Mutex
	pending []Record

	name string
	addr fount.Address

	accounts  orm.Bucket
	cash      cash.Controller
	tickets   TicketLedger
	cycles    CycleStore
	splits    SplitStore
	prices    PriceOracle
	directory TerminalDirectory
	projects  ProjectRegistry
	rec       Recorder

	delegates  map[string]Delegate
	allocators map[string]FundsAllocator
	terminals  map[string]Terminal
}

var _ Terminal = (*Controller)(nil)

// NewController wires a terminal instance. The name distinguishes this
// instance's custody address and account bucket from other terminals
// sharing the store. A nil recorder drops all audit records.
func NewController(
	name string,
	cashctrl cash.Controller,
	tickets TicketLedger,
	cyclestore CycleStore,
	splitstore SplitStore,
	prices PriceOracle,
	dir TerminalDirectory,
	projects ProjectRegistry,
	rec Recorder,
) *Controller {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Controller{
		name:       name,
		addr:       fount.NewCondition("terminal", "custody", []byte(name)).Address(),
		accounts:   NewAccountBucket(name),
		cash:       cashctrl,
		tickets:    tickets,
		cycles:     cyclestore,
		splits:     splitstore,
		prices:     prices,
		directory:  dir,
		projects:   projects,
		rec:        rec,
		delegates:  make(map[string]Delegate),
		allocators: make(map[string]FundsAllocator),
		terminals:  make(map[string]Terminal),
	}
}

// Address returns the custody address funds of this terminal are held
// under.
func (c *Controller) Address() fount.Address {
	return c.addr
}

// RegisterDelegate makes a delegate available to cycle configurations
// under the given name.
func (c *Controller) RegisterDelegate(name string, d Delegate) {
	c.delegates[name] = d
}

// RegisterAllocator makes a funds allocator available to payout splits
// under the given name.
func (c *Controller) RegisterAllocator(name string, a FundsAllocator) {
	c.allocators[name] = a
}

// RegisterTerminal makes another terminal reachable for cross-terminal
// deposits and migration.
func (c *Controller) RegisterTerminal(t Terminal) {
	c.terminals[string(t.Address())] = t
}

// run executes fn on a cache wrap under the reentrancy lock. On success
// the cache is committed and buffered audit records are delivered, on
// failure everything is discarded.
func (c *Controller) run(db fount.CacheableKVStore, op string, fn func(cache fount.CacheableKVStore) error) error {
	if !c.mu.TryLock() {
		return errors.Wrapf(ErrReentrancy, "%s: %s", c.name, op)
	}
	defer c.mu.Unlock()

	c.pending = nil
	cache := db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		c.pending = nil
		return err
	}
	if err := cache.Write(); err != nil {
		c.pending = nil
		return err
	}
	for _, rec := range c.pending {
		c.rec.Record(rec)
	}
	c.pending = nil
	return nil
}

// note buffers an audit record until the running operation commits.
func (c *Controller) note(rec Record) {
	c.pending = append(c.pending, rec)
}

func (c *Controller) account(db fount.ReadOnlyKVStore, projectID int64) (*ProjectAccount, error) {
	var a ProjectAccount
	switch err := c.accounts.One(db, accountKey(projectID), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &ProjectAccount{}, nil
	default:
		return nil, err
	}
}

func (c *Controller) saveAccount(db fount.KVStore, projectID int64, a *ProjectAccount) error {
	return c.accounts.Put(db, accountKey(projectID), a)
}

// currentCycle returns the active cycle or ErrState if the project was
// never configured.
func (c *Controller) currentCycle(db fount.KVStore, projectID int64) (*cycles.Cycle, error) {
	cycle, err := c.cycles.CurrentOf(db, projectID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, errors.Wrapf(errors.ErrState, "project %d has no funding cycle", projectID)
	}
	return cycle, nil
}

// BalanceOf returns the custodied balance of the project.
func (c *Controller) BalanceOf(db fount.ReadOnlyKVStore, projectID int64) (int64, error) {
	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// OverflowOf returns the redeemable part of the project's balance under
// the active cycle. Projects without a cycle have no overflow.
func (c *Controller) OverflowOf(db fount.KVStore, projectID int64) (int64, error) {
	cycle, err := c.cycles.CurrentOf(db, projectID)
	if err != nil {
		return 0, err
	}
	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	if cycle == nil {
		return 0, nil
	}
	return c.overflowOf(db, cycle, a.Balance)
}

// ReservedTicketsOf returns how many reserved tickets the project owes
// under the active cycle's reserved rate.
func (c *Controller) ReservedTicketsOf(db fount.KVStore, projectID int64) (int64, error) {
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
	return reservedTickets(a.TicketTracker, cycle.Config.ReservedRate, supply)
}

// ClaimableOf quotes the proceeds of redeeming count tickets right now,
// without a delegate override.
func (c *Controller) ClaimableOf(db fount.KVStore, projectID int64, count int64) (int64, error) {
	cycle, err := c.currentCycle(db, projectID)
	if err != nil {
		return 0, err
	}
	a, err := c.account(db, projectID)
	if err != nil {
		return 0, err
	}
	return c.claimableOf(db, cycle, a, projectID, count)
}

// claimableOf prices count tickets against the current overflow. The
// supply eligible for redemption includes pending reserved tickets, and
// an active reconfiguration ballot switches the bonding curve rate.
func (c *Controller) claimableOf(db fount.KVStore, cycle *cycles.Cycle, a *ProjectAccount, projectID, count int64) (int64, error) {
	overflow, err := c.overflowOf(db, cycle, a.Balance)
	if err != nil {
		return 0, err
	}
	supply, err := c.tickets.TotalSupply(db, projectID)
	if err != nil {
		return 0, err
	}
	reserved, err := reservedTickets(a.TicketTracker, cycle.Config.ReservedRate, supply)
	if err != nil {
		return 0, err
	}
	eligible, err := addInt64(supply, reserved)
	if err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "eligible supply")
	}

	rate := cycle.Config.BondingCurveRate
	ballot, err := c.cycles.BallotStateOf(db, projectID)
	if err != nil {
		return 0, err
	}
	if ballot == cycles.BallotActive {
		rate = cycle.Config.ReconfigurationBondingCurveRate
	}
	return claimableProceeds(overflow, count, eligible, rate)
}

// Configure installs a new funding cycle configuration for the project.
// Only the project owner may configure. Reserved tickets owed under the
// outgoing configuration are printed first so a rate change cannot
// alter what is already owed.
func (c *Controller) Configure(db fount.CacheableKVStore, caller fount.Address, projectID int64, props cycles.Properties, config cycles.Config, activateImmediately bool) (*cycles.Cycle, error) {
	var cycle *cycles.Cycle
	err := c.run(db, "configure", func(cache fount.CacheableKVStore) error {
		if err := c.requireOwner(cache, caller, projectID); err != nil {
			return err
		}
		if config.Delegate != "" {
			if _, ok := c.delegates[config.Delegate]; !ok {
				return errors.Wrapf(errors.ErrNotFound, "delegate %q", config.Delegate)
			}
		}
		if err := c.settleReserved(cache, projectID); err != nil {
			return err
		}
		conf, err := loadConf(cache)
		if err != nil {
			return err
		}
		cycle, err = c.cycles.Configure(cache, projectID, props, config, conf.FeeRate, activateImmediately)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cycle, nil
}

// settleReserved prints pending reserved tickets if the tracker shows
// any unprocessed position. Projects without a cycle have nothing to
// settle.
func (c *Controller) settleReserved(db fount.CacheableKVStore, projectID int64) error {
	cycle, err := c.cycles.CurrentOf(db, projectID)
	if err != nil {
		return err
	}
	if cycle == nil {
		return nil
	}
	a, err := c.account(db, projectID)
	if err != nil {
		return err
	}
	supply, err := c.tickets.TotalSupply(db, projectID)
	if err != nil {
		return err
	}
	if a.TicketTracker == supply {
		return nil
	}
	_, err = c.printReserved(db, projectID, "settlement")
	return err
}

func (c *Controller) requireOwner(db fount.ReadOnlyKVStore, caller fount.Address, projectID int64) error {
	owner, err := c.projects.OwnerOf(db, projectID)
	if err != nil {
		return err
	}
	if !owner.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not own project %d", caller, projectID)
	}
	return nil
}

func (c *Controller) requireGovernor(db fount.ReadOnlyKVStore, caller fount.Address) (Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return conf, err
	}
	if !conf.Governor.Equals(caller) {
		return conf, errors.Wrapf(errors.ErrUnauthorized, "%s is not the governor", caller)
	}
	return conf, nil
}

// SetFee changes the protocol fee captured into future configurations.
// Cycles already configured keep the fee they were created with.
func (c *Controller) SetFee(db fount.CacheableKVStore, caller fount.Address, rate int32) error {
	return c.run(db, "set fee", func(cache fount.CacheableKVStore) error {
		conf, err := c.requireGovernor(cache, caller)
		if err != nil {
			return err
		}
		if rate < 0 || rate > cycles.RateDenominator {
			return errors.Wrapf(errors.ErrInput, "fee rate: %d", rate)
		}
		conf.FeeRate = rate
		return SaveConf(cache, conf)
	})
}

func migrationKey(terminal fount.Address) []byte {
	return append([]byte("migallow:"), terminal...)
}

// AllowMigration adds a terminal to the migration allow list. Only the
// governor may extend the list and entries are never removed.
func (c *Controller) AllowMigration(db fount.CacheableKVStore, caller fount.Address, terminal fount.Address) error {
	return c.run(db, "allow migration", func(cache fount.CacheableKVStore) error {
		if _, err := c.requireGovernor(cache, caller); err != nil {
			return err
		}
		if err := terminal.Validate(); err != nil {
			return errors.Wrap(err, "terminal")
		}
		if err := cache.Set(migrationKey(terminal), []byte{1}); err != nil {
			return err
		}
		c.note(AllowMigrationRecord{Terminal: terminal})
		return nil
	})
}

func migrationAllowed(db fount.ReadOnlyKVStore, terminal fount.Address) (bool, error) {
	return db.Has(migrationKey(terminal))
}
