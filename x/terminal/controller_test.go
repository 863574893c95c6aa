package terminal

import (
	"testing"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/founttest"
	"github.com/fount-one/fount/founttest/assert"
	"github.com/fount-one/fount/store"
	"github.com/fount-one/fount/x/cash"
	"github.com/fount-one/fount/x/cycles"
	"github.com/fount-one/fount/x/directory"
	"github.com/fount-one/fount/x/prices"
	"github.com/fount-one/fount/x/projects"
	"github.com/fount-one/fount/x/splits"
	"github.com/fount-one/fount/x/tickets"
)

type captureRecorder struct {
	recs []Record
}

func (r *captureRecorder) Record(rec Record) {
	r.recs = append(r.recs, rec)
}

type fixture struct {
	db       fount.CacheableKVStore
	cash     *cash.CashController
	tickets  *tickets.TicketController
	cycles   *cycles.Store
	splits   *splits.Store
	prices   *prices.Store
	dir      *directory.Store
	registry *projects.Register
	term     *Controller
	rec      *captureRecorder

	governor   fount.Address
	protoOwner fount.Address
	owner      fount.Address
	payer      fount.Address

	protocolID int64
	projectID  int64
}

// newFixture wires a terminal with a funded payer, a protocol project
// collecting fees and one regular project, both homed on the terminal.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:       store.MemStore(),
		cash:     cash.NewController(),
		tickets:  tickets.NewController(),
		cycles:   cycles.NewStore(),
		splits:   splits.NewStore(),
		prices:   prices.NewStore("BASE"),
		dir:      directory.NewStore(),
		registry: projects.NewRegister(),
		rec:      &captureRecorder{},

		governor:   founttest.NewAddress(),
		protoOwner: founttest.NewAddress(),
		owner:      founttest.NewAddress(),
		payer:      founttest.NewAddress(),
	}
	f.term = NewController("primary", f.cash, f.tickets, f.cycles, f.splits, f.prices, f.dir, f.registry, f.rec)

	var err error
	f.protocolID, err = f.registry.Create(f.db, f.protoOwner, "protocol")
	assert.Nil(t, err)
	f.projectID, err = f.registry.Create(f.db, f.owner, "arcade")
	assert.Nil(t, err)

	assert.Nil(t, SaveConf(f.db, Configuration{
		Governor:          f.governor,
		FeeRate:           10,
		ProtocolProjectID: f.protocolID,
		BaseCurrency:      "BASE",
	}))
	assert.Nil(t, f.dir.SetTerminal(f.db, f.protocolID, f.term.Address()))
	assert.Nil(t, f.dir.SetTerminal(f.db, f.projectID, f.term.Address()))

	// The protocol project needs an open cycle so that fees can be
	// routed into it.
	_, err = f.term.Configure(f.db, f.protoOwner, f.protocolID, cycles.Properties{
		Target:   1 << 50,
		Currency: "BASE",
	}, cycles.Config{}, false)
	assert.Nil(t, err)

	assert.Nil(t, f.cash.IssueCoins(f.db, f.payer, 1_000_000_000))
	return f
}

// configure installs a cycle for the test project with a one to one
// mint weight so that amounts and tickets line up.
func (f *fixture) configure(t *testing.T, target int64, config cycles.Config) *cycles.Cycle {
	t.Helper()
	cycle, err := f.term.Configure(f.db, f.owner, f.projectID, cycles.Properties{
		Target:   target,
		Currency: "BASE",
		Weight:   fount.Frac(1, 1),
	}, config, true)
	assert.Nil(t, err)
	return cycle
}

func (f *fixture) pay(t *testing.T, amount int64) {
	t.Helper()
	_, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, amount, 0, false, "")
	assert.Nil(t, err)
}

func (f *fixture) accountOf(t *testing.T, projectID int64) *ProjectAccount {
	t.Helper()
	a, err := f.term.account(f.db, projectID)
	assert.Nil(t, err)
	return a
}

func (f *fixture) ticketBalance(t *testing.T, holder fount.Address, projectID int64) int64 {
	t.Helper()
	got, err := f.tickets.BalanceOf(f.db, holder, projectID)
	assert.Nil(t, err)
	return got
}

func (f *fixture) cashBalance(t *testing.T, addr fount.Address) int64 {
	t.Helper()
	got, err := f.cash.Balance(f.db, addr)
	assert.Nil(t, err)
	return got
}

func TestPayMintsTickets(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})

	number, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, 1000, 1000, false, "hello")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), number)

	assert.Equal(t, int64(1000), f.accountOf(t, f.projectID).Balance)
	assert.Equal(t, int64(1000), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(1000), f.cashBalance(t, f.term.Address()))
	assert.Equal(t, int64(1_000_000_000-1000), f.cashBalance(t, f.payer))
}

func TestPayWithholdsReservedShare(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{ReservedRate: 100})

	f.pay(t, 1000)

	// Half the weighted amount circulates, the other half is owed to
	// the reserved allocation.
	assert.Equal(t, int64(500), f.ticketBalance(t, f.payer, f.projectID))

	owed, err := f.term.ReservedTicketsOf(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(500), owed)

	printed, err := f.term.PrintReservedTickets(f.db, f.projectID, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(500), printed)
	assert.Equal(t, int64(500), f.ticketBalance(t, f.owner, f.projectID))

	// Printing settles the position completely.
	owed, err = f.term.ReservedTicketsOf(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), owed)

	supply, err := f.tickets.TotalSupply(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), supply)
	assert.Equal(t, supply, f.accountOf(t, f.projectID).TicketTracker)
}

func TestPayFullyReservedMintsNothing(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{ReservedRate: 200})

	f.pay(t, 1000)

	assert.Equal(t, int64(0), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(-1000), f.accountOf(t, f.projectID).TicketTracker)

	printed, err := f.term.PrintReservedTickets(f.db, f.projectID, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), printed)
	assert.Equal(t, int64(1000), f.ticketBalance(t, f.owner, f.projectID))
	assert.Equal(t, int64(1000), f.accountOf(t, f.projectID).TicketTracker)
}

func TestPaySlippageLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})

	_, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, 1000, 1001, false, "")
	assert.IsErr(t, ErrBelowMinimum, err)

	assert.Equal(t, int64(0), f.accountOf(t, f.projectID).Balance)
	assert.Equal(t, int64(0), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(1_000_000_000), f.cashBalance(t, f.payer))
}

func TestPayPaused(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{PausePay: true})

	_, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, 1000, 0, false, "")
	assert.IsErr(t, ErrPaused, err)
	assert.Equal(t, int64(0), f.accountOf(t, f.projectID).Balance)
}

func TestPayWithoutCycle(t *testing.T) {
	f := newFixture(t)

	_, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, 1000, 0, false, "")
	assert.IsErr(t, errors.ErrState, err)
}

func TestTapTakesFeeAndPaysOwner(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	res, err := f.term.Tap(f.db, f.owner, f.projectID, 1000, "BASE", 0)
	assert.Nil(t, err)
	// fee rate 10 of 200 on top: net = 1000*200/210 = 952, fee = 48.
	assert.Equal(t, int64(1000), res.Converted)
	assert.Equal(t, int64(48), res.Fee)
	assert.Equal(t, int64(0), res.Distributed)
	assert.Equal(t, int64(952), res.Leftover)

	assert.Equal(t, int64(9000), f.accountOf(t, f.projectID).Balance)
	assert.Equal(t, int64(952), f.cashBalance(t, f.owner))

	// The fee is a payment into the protocol project on the owner's
	// behalf: its balance grows and the owner holds its tickets.
	assert.Equal(t, int64(48), f.accountOf(t, f.protocolID).Balance)
	assert.Equal(t, int64(48*1000), f.ticketBalance(t, f.owner, f.protocolID))
}

func TestTapNoFeeForProtocolProject(t *testing.T) {
	f := newFixture(t)
	_, err := f.term.Pay(f.db, f.payer, f.protocolID, f.payer, 1000, 0, false, "")
	assert.Nil(t, err)

	res, err := f.term.Tap(f.db, f.protoOwner, f.protocolID, 500, "BASE", 0)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), res.Fee)
	assert.Equal(t, int64(500), res.Leftover)
	assert.Equal(t, int64(500), f.cashBalance(t, f.protoOwner))
}

func TestTapRespectsTarget(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	_, err := f.term.Tap(f.db, f.owner, f.projectID, 5001, "BASE", 0)
	assert.IsErr(t, errors.ErrAmount, err)
	assert.Equal(t, int64(10000), f.accountOf(t, f.projectID).Balance)

	// Up to the target is fine, across two taps.
	_, err = f.term.Tap(f.db, f.owner, f.projectID, 3000, "BASE", 0)
	assert.Nil(t, err)
	_, err = f.term.Tap(f.db, f.owner, f.projectID, 2000, "BASE", 0)
	assert.Nil(t, err)
	_, err = f.term.Tap(f.db, f.owner, f.projectID, 1, "BASE", 0)
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestTapWithoutCycleIsNoop(t *testing.T) {
	f := newFixture(t)

	res, err := f.term.Tap(f.db, f.owner, f.projectID, 100, "BASE", 0)
	assert.Nil(t, err)
	assert.Equal(t, TapResult{}, res)
}

func TestTapCurrencyMismatch(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	_, err := f.term.Tap(f.db, f.owner, f.projectID, 100, "USD", 0)
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestTapDistributesPayoutSplits(t *testing.T) {
	f := newFixture(t)
	cycle := f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	alice := founttest.NewAddress()
	bob := founttest.NewAddress()
	assert.Nil(t, f.splits.SetPayoutSplits(f.db, f.projectID, cycle.ConfigID, []splits.Split{
		{Percent: 5000, Beneficiary: alice},
		{Percent: 2500, Beneficiary: bob},
	}))

	res, err := f.term.Tap(f.db, f.owner, f.projectID, 1000, "BASE", 0)
	assert.Nil(t, err)
	assert.Equal(t, int64(48), res.Fee)
	// Splits cut from the net 952: 476 and 238, the rest to the owner.
	assert.Equal(t, int64(476+238), res.Distributed)
	assert.Equal(t, int64(952-476-238), res.Leftover)
	assert.Equal(t, int64(476), f.cashBalance(t, alice))
	assert.Equal(t, int64(238), f.cashBalance(t, bob))
	assert.Equal(t, res.Leftover, f.cashBalance(t, f.owner))
}

func TestTapSplitRoutedToProject(t *testing.T) {
	f := newFixture(t)
	cycle := f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	// The whole payout is deposited into the protocol project with the
	// owner as ticket beneficiary.
	assert.Nil(t, f.splits.SetPayoutSplits(f.db, f.projectID, cycle.ConfigID, []splits.Split{
		{Percent: 10000, ProjectID: f.protocolID, Beneficiary: f.owner},
	}))

	res, err := f.term.Tap(f.db, f.owner, f.projectID, 1000, "BASE", 0)
	assert.Nil(t, err)
	assert.Equal(t, int64(952), res.Distributed)
	assert.Equal(t, int64(0), res.Leftover)
	// Fee and split both land in the protocol project.
	assert.Equal(t, int64(48+952), f.accountOf(t, f.protocolID).Balance)
	assert.Equal(t, int64(1000*1000), f.ticketBalance(t, f.owner, f.protocolID))
}

type testAllocator struct {
	addr  fount.Address
	calls []int64
}

func (a *testAllocator) Address() fount.Address { return a.addr }

func (a *testAllocator) Allocate(db fount.KVStore, projectID int64, sp splits.Split, amount int64) error {
	a.calls = append(a.calls, amount)
	return nil
}

func TestTapSplitRoutedToAllocator(t *testing.T) {
	f := newFixture(t)
	cycle := f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10000)

	alloc := &testAllocator{addr: founttest.NewAddress()}
	f.term.RegisterAllocator("vault", alloc)
	assert.Nil(t, f.splits.SetPayoutSplits(f.db, f.projectID, cycle.ConfigID, []splits.Split{
		{Percent: 5000, Allocator: "vault"},
	}))

	res, err := f.term.Tap(f.db, f.owner, f.projectID, 1000, "BASE", 0)
	assert.Nil(t, err)
	// The allocator took custody of its cut and was told about it.
	assert.Equal(t, int64(476), res.Distributed)
	assert.Equal(t, int64(476), f.cashBalance(t, alloc.addr))
	assert.Equal(t, []int64{476}, alloc.calls)
}

func TestRedeemAgainstOverflow(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 200})
	f.pay(t, 10000)

	// Overflow is the balance above the untapped target: 5000.
	overflow, err := f.term.OverflowOf(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(5000), overflow)

	dest := founttest.NewAddress()
	proceeds, err := f.term.Redeem(f.db, f.payer, f.projectID, 5000, 0, dest, false, "")
	assert.Nil(t, err)
	// Half the supply claims half the overflow at the linear rate.
	assert.Equal(t, int64(2500), proceeds)
	assert.Equal(t, int64(2500), f.cashBalance(t, dest))
	assert.Equal(t, int64(7500), f.accountOf(t, f.projectID).Balance)
	assert.Equal(t, int64(5000), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(-5000), f.accountOf(t, f.projectID).TicketTracker)
}

func TestRedeemWholeSupplyClaimsAllOverflow(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 77})
	f.pay(t, 10000)

	dest := founttest.NewAddress()
	proceeds, err := f.term.Redeem(f.db, f.payer, f.projectID, 10000, 0, dest, false, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(5000), proceeds)
	// Exactly the target reserve remains.
	assert.Equal(t, int64(5000), f.accountOf(t, f.projectID).Balance)
}

func TestRedeemOnTheCurve(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 164})
	f.pay(t, 10000)

	// overflow 5000, supply 10000, count 1000:
	// base = 500, proceeds = 500*(164+floor(1000*36/10000))/200 = 417.
	proceeds, err := f.term.Redeem(f.db, f.payer, f.projectID, 1000, 0, founttest.NewAddress(), false, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(417), proceeds)
}

func TestRedeemToTerminalBurnsWithoutProceeds(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 200})
	f.pay(t, 10)

	proceeds, err := f.term.Redeem(f.db, f.payer, f.projectID, 8, 0, f.term.Address(), false, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(0), proceeds)
	assert.Equal(t, int64(2), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(10), f.accountOf(t, f.projectID).Balance)

	// The tracker moves down by the full count and crosses zero, so
	// the unprocessed position still covers the pre-burn supply.
	a := f.accountOf(t, f.projectID)
	assert.Equal(t, int64(-8), a.TicketTracker)
	u, err := unprocessedTickets(a.TicketTracker, 2)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), u)
}

func TestRedeemSlippageLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 200})
	f.pay(t, 10000)

	_, err := f.term.Redeem(f.db, f.payer, f.projectID, 5000, 2501, founttest.NewAddress(), false, "")
	assert.IsErr(t, ErrBelowMinimum, err)
	assert.Equal(t, int64(10000), f.ticketBalance(t, f.payer, f.projectID))
	assert.Equal(t, int64(10000), f.accountOf(t, f.projectID).Balance)
}

func TestRedeemPaused(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{PauseRedeem: true})
	f.pay(t, 10000)

	_, err := f.term.Redeem(f.db, f.payer, f.projectID, 100, 0, founttest.NewAddress(), false, "")
	assert.IsErr(t, ErrPaused, err)
}

func TestRedeemMoreThanHeld(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{BondingCurveRate: 200})
	f.pay(t, 100)

	_, err := f.term.Redeem(f.db, f.payer, f.projectID, 101, 0, founttest.NewAddress(), false, "")
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestPremineWindow(t *testing.T) {
	f := newFixture(t)

	// Premining works before any configuration or deposit.
	count, err := f.term.PrintPreminedTickets(f.db, f.owner, f.projectID, 5, "BASE", fount.Fraction{}, f.owner, false, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(5000), count)
	assert.Equal(t, int64(5000), f.ticketBalance(t, f.owner, f.projectID))

	a := f.accountOf(t, f.projectID)
	assert.Equal(t, int64(5000), a.TicketTracker)
	assert.Equal(t, int64(5000), a.Preconfigured)

	// More premines stack while the window is open.
	_, err = f.term.PrintPreminedTickets(f.db, f.owner, f.projectID, 1, "BASE", fount.Frac(2, 1), f.owner, true, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(5002), f.ticketBalance(t, f.owner, f.projectID))

	// Only the owner may premine.
	_, err = f.term.PrintPreminedTickets(f.db, f.payer, f.projectID, 1, "BASE", fount.Fraction{}, f.payer, false, "")
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// A real deposit closes the window for good.
	f.configure(t, 5000, cycles.Config{})
	f.pay(t, 10)
	_, err = f.term.PrintPreminedTickets(f.db, f.owner, f.projectID, 1, "BASE", fount.Fraction{}, f.owner, false, "")
	assert.IsErr(t, ErrPremineClosed, err)
}

func TestPrintReservedDistributesTicketSplits(t *testing.T) {
	f := newFixture(t)
	cycle := f.configure(t, 5000, cycles.Config{ReservedRate: 100})

	alice := founttest.NewAddress()
	assert.Nil(t, f.splits.SetTicketSplits(f.db, f.projectID, cycle.ConfigID, []splits.Split{
		{Percent: 4000, Beneficiary: alice},
	}))

	f.pay(t, 1000)
	printed, err := f.term.PrintReservedTickets(f.db, f.projectID, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(500), printed)
	assert.Equal(t, int64(200), f.ticketBalance(t, alice, f.projectID))
	assert.Equal(t, int64(300), f.ticketBalance(t, f.owner, f.projectID))

	// A second print finds nothing owed.
	printed, err = f.term.PrintReservedTickets(f.db, f.projectID, "")
	assert.Nil(t, err)
	assert.Equal(t, int64(0), printed)
}

func TestConfigureSettlesReservedFirst(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{ReservedRate: 100})
	f.pay(t, 1000)

	// Reconfiguring to a different rate cannot change what is already
	// owed: the outstanding 500 are printed under the old rate.
	f.configure(t, 5000, cycles.Config{})
	assert.Equal(t, int64(500), f.ticketBalance(t, f.owner, f.projectID))

	owed, err := f.term.ReservedTicketsOf(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), owed)
}

func TestConfigureRequiresOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.term.Configure(f.db, f.payer, f.projectID, cycles.Properties{
		Target:   100,
		Currency: "BASE",
	}, cycles.Config{}, false)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestAddToBalance(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{ReservedRate: 200})
	f.pay(t, 100)
	assert.Equal(t, int64(-100), f.accountOf(t, f.projectID).TicketTracker)

	// A top-up of a project homed here leaves the tracker alone.
	assert.Nil(t, f.term.AddToBalance(f.db, f.payer, f.projectID, 50))
	a := f.accountOf(t, f.projectID)
	assert.Equal(t, int64(150), a.Balance)
	assert.Equal(t, int64(-100), a.TicketTracker)

	// Balance arriving for a project homed elsewhere voids the
	// reserved position.
	assert.Nil(t, f.dir.SetTerminal(f.db, f.projectID, founttest.NewAddress()))
	assert.Nil(t, f.term.AddToBalance(f.db, f.payer, f.projectID, 50))
	a = f.accountOf(t, f.projectID)
	assert.Equal(t, int64(200), a.Balance)
	supply, err := f.tickets.TotalSupply(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, supply, a.TicketTracker)
}

func TestMigrate(t *testing.T) {
	f := newFixture(t)
	second := NewController("secondary", f.cash, f.tickets, f.cycles, f.splits, f.prices, f.dir, f.registry, nil)
	f.term.RegisterTerminal(second)

	f.configure(t, 5000, cycles.Config{})
	f.pay(t, 1000)

	// The target must be allow-listed first.
	_, err := f.term.Migrate(f.db, f.owner, f.projectID, second.Address())
	assert.IsErr(t, ErrMigrationTarget, err)
	assert.Nil(t, f.term.AllowMigration(f.db, f.governor, second.Address()))

	// Only the owner may migrate.
	_, err = f.term.Migrate(f.db, f.payer, f.projectID, second.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	moved, err := f.term.Migrate(f.db, f.owner, f.projectID, second.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), moved)

	// The balance moved once: source empty, destination credited, and
	// the custody funds changed wallets.
	assert.Equal(t, int64(0), f.accountOf(t, f.projectID).Balance)
	dst, err := second.account(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), dst.Balance)
	assert.Equal(t, int64(0), f.cashBalance(t, f.term.Address()))
	assert.Equal(t, int64(1000), f.cashBalance(t, second.Address()))

	// The directory now routes to the destination.
	home, err := f.dir.TerminalOf(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, second.Address(), home)

	// No tickets were minted or burned by the move.
	supply, err := f.tickets.TotalSupply(f.db, f.projectID)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), supply)
}

func TestMigrateSettlesReservedFirst(t *testing.T) {
	f := newFixture(t)
	second := NewController("secondary", f.cash, f.tickets, f.cycles, f.splits, f.prices, f.dir, f.registry, nil)
	f.term.RegisterTerminal(second)
	assert.Nil(t, f.term.AllowMigration(f.db, f.governor, second.Address()))

	f.configure(t, 5000, cycles.Config{ReservedRate: 100})
	f.pay(t, 1000)

	_, err := f.term.Migrate(f.db, f.owner, f.projectID, second.Address())
	assert.Nil(t, err)
	// The owed 500 reserved tickets were printed before the move.
	assert.Equal(t, int64(500), f.ticketBalance(t, f.owner, f.projectID))
}

func TestMigrateOnlyWhenHomedHere(t *testing.T) {
	f := newFixture(t)
	second := NewController("secondary", f.cash, f.tickets, f.cycles, f.splits, f.prices, f.dir, f.registry, nil)
	f.term.RegisterTerminal(second)
	assert.Nil(t, f.term.AllowMigration(f.db, f.governor, second.Address()))

	assert.Nil(t, f.dir.SetTerminal(f.db, f.projectID, second.Address()))
	_, err := f.term.Migrate(f.db, f.owner, f.projectID, second.Address())
	assert.IsErr(t, errors.ErrState, err)
}

func TestGovernance(t *testing.T) {
	f := newFixture(t)

	assert.IsErr(t, errors.ErrUnauthorized, f.term.SetFee(f.db, f.owner, 20))
	assert.Nil(t, f.term.SetFee(f.db, f.governor, 20))

	// New configurations capture the new fee, old cycles keep theirs.
	cycle := f.configure(t, 5000, cycles.Config{})
	assert.Equal(t, int32(20), cycle.Fee)
	proto, err := f.cycles.CurrentOf(f.db, f.protocolID)
	assert.Nil(t, err)
	assert.Equal(t, int32(10), proto.Fee)

	assert.IsErr(t, errors.ErrUnauthorized, f.term.AllowMigration(f.db, f.owner, founttest.NewAddress()))
}

func TestRecorderSeesCommittedOperationsOnly(t *testing.T) {
	f := newFixture(t)
	f.configure(t, 5000, cycles.Config{})
	f.rec.recs = nil

	f.pay(t, 1000)
	assert.Equal(t, 1, len(f.rec.recs))
	rec, ok := f.rec.recs[0].(PayRecord)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(1000), rec.Amount)
	assert.Equal(t, int64(1000), rec.Minted)

	// A failed operation leaves no record behind.
	f.rec.recs = nil
	_, err := f.term.Pay(f.db, f.payer, f.projectID, f.payer, 1000, 2000, false, "")
	assert.IsErr(t, ErrBelowMinimum, err)
	assert.Equal(t, 0, len(f.rec.recs))
}
