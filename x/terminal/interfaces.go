package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/x/cycles"
	"github.com/fount-one/fount/x/splits"
)

// CycleStore is the funding cycle schedule the controller consults and
// advances. *cycles.Store implements it.
type CycleStore interface {
	Configure(db fount.KVStore, projectID int64, props cycles.Properties, config cycles.Config, fee int32, activateImmediately bool) (*cycles.Cycle, error)
	CurrentOf(db fount.KVStore, projectID int64) (*cycles.Cycle, error)
	RegisterTap(db fount.KVStore, projectID int64, amount int64) (*cycles.Cycle, error)
	BallotStateOf(db fount.ReadOnlyKVStore, projectID int64) (int32, error)
}

// TicketLedger is the subset of the ticket controller the terminal
// needs. Transfers between holders stay outside the terminal.
type TicketLedger interface {
	Mint(db fount.KVStore, beneficiary fount.Address, projectID int64, amount int64, preferUnstaked bool) error
	Burn(db fount.KVStore, holder fount.Address, projectID int64, amount int64, preferUnstaked bool) error
	TotalSupply(db fount.ReadOnlyKVStore, projectID int64) (int64, error)
	BalanceOf(db fount.ReadOnlyKVStore, holder fount.Address, projectID int64) (int64, error)
}

// SplitStore resolves the configured payout and ticket splits.
// *splits.Store implements it.
type SplitStore interface {
	PayoutSplits(db fount.ReadOnlyKVStore, projectID, configID int64) ([]splits.Split, error)
	TicketSplits(db fount.ReadOnlyKVStore, projectID, configID int64) ([]splits.Split, error)
}

// PriceOracle quotes currency units per base unit. *prices.Store
// implements it.
type PriceOracle interface {
	PriceOf(db fount.ReadOnlyKVStore, currency string) (fount.Fraction, error)
}

// TerminalDirectory is the project to terminal routing table.
// *directory.Store implements it.
type TerminalDirectory interface {
	TerminalOf(db fount.ReadOnlyKVStore, projectID int64) (fount.Address, error)
	SetTerminal(db fount.KVStore, projectID int64, terminal fount.Address) error
}

// ProjectRegistry resolves project ownership. *projects.Register
// implements it.
type ProjectRegistry interface {
	OwnerOf(db fount.ReadOnlyKVStore, projectID int64) (fount.Address, error)
}

// Terminal is the surface one terminal uses to hand a project over to
// another: split deposits routed to projects homed elsewhere and
// balance migration.
type Terminal interface {
	Address() fount.Address
	Pay(db fount.CacheableKVStore, payer fount.Address, projectID int64, beneficiary fount.Address, amount, minTickets int64, preferUnstaked bool, memo string) (int64, error)
	AddToBalance(db fount.CacheableKVStore, caller fount.Address, projectID int64, amount int64) error
}

// FundsAllocator takes custody of a payout split cut and forwards it
// according to its own rules.
type FundsAllocator interface {
	// Address is the wallet the cut is moved to before Allocate runs.
	Address() fount.Address
	Allocate(db fount.KVStore, projectID int64, split splits.Split, amount int64) error
}

// Access is a delegate's verdict on an operation.
type Access int32

const (
	// AccessAllow lets the operation proceed.
	AccessAllow Access = iota
	// AccessAllowWithCallback lets the operation proceed and requests
	// the matching callback after the state change.
	AccessAllowWithCallback
	// AccessDisallow aborts the operation.
	AccessDisallow
)

// PayParams describe a payment to a delegate.
type PayParams struct {
	Payer       fount.Address
	ProjectID   int64
	Beneficiary fount.Address
	Amount      int64
	Memo        string
}

// RedeemParams describe a redemption to a delegate.
type RedeemParams struct {
	Holder      fount.Address
	ProjectID   int64
	Count       int64
	Destination fount.Address
	Memo        string
}

// Delegate customizes payment and redemption for cycles that name it.
// Hooks run before the state change and may override the economic
// parameters or veto the operation. Callbacks run after the state
// change when the hook asked for them; a callback error aborts the
// whole operation.
type Delegate interface {
	PayHook(db fount.KVStore, p PayParams, weight fount.Fraction) (fount.Fraction, string, Access, error)
	PayCallback(db fount.KVStore, p PayParams, minted int64) error
	RedeemHook(db fount.KVStore, p RedeemParams, proposed int64) (int64, string, Access, error)
	RedeemCallback(db fount.KVStore, p RedeemParams, proceeds int64) error
}
