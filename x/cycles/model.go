package cycles

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// RateDenominator is the denominator of every rate in the system.
// Rates are expressed out of 200 so that full allocation is 200 and
// intermediate math has room above the nominal maximum.
const RateDenominator = 200

// BaseWeight is the mint weight used when a configuration does not
// specify one, and for premined tickets.
var BaseWeight = fount.Frac(1000, 1)

// Ballot states reported for a queued reconfiguration.
const (
	// BallotNone means there is no reconfiguration pending.
	BallotNone int32 = iota
	// BallotActive means a reconfiguration awaits approval.
	BallotActive
	// BallotApproved means the queued configuration may activate.
	BallotApproved
	// BallotFailed means the queued configuration was rejected.
	BallotFailed
)

// Properties are the caller supplied parameters of a funding cycle.
type Properties struct {
	// Target is the amount the project intends to withdraw during the
	// cycle, denominated in Currency.
	Target int64
	// Currency is the denomination of Target.
	Currency string
	// Duration of the cycle. Carried configuration, the reference
	// store does not roll cycles over on a clock.
	Duration int64
	// Weight is the number of tickets minted per deposited base unit.
	// The zero value selects BaseWeight.
	Weight fount.Fraction
}

func (p Properties) Validate() error {
	if p.Target < 0 {
		return errors.Wrap(errors.ErrModel, "negative target")
	}
	if p.Currency == "" {
		return errors.Wrap(errors.ErrEmpty, "currency")
	}
	if p.Duration < 0 {
		return errors.Wrap(errors.ErrModel, "negative duration")
	}
	return p.Weight.Validate()
}

// Config is the explicit per-cycle configuration record: pause flags,
// rates and delegate selection.
type Config struct {
	PausePay    bool
	PauseTap    bool
	PauseRedeem bool

	// ReservedRate is the share of minted tickets, out of 200, that is
	// withheld for the project owner and ticket splits.
	ReservedRate int32
	// BondingCurveRate shapes redemption proceeds, out of 200.
	BondingCurveRate int32
	// ReconfigurationBondingCurveRate replaces BondingCurveRate while
	// a reconfiguration ballot is active.
	ReconfigurationBondingCurveRate int32

	// Delegate names a registered access delegate. Empty means no
	// delegate is attached to this cycle.
	Delegate            string
	UseDelegateOnPay    bool
	UseDelegateOnRedeem bool
}

func (c Config) Validate() error {
	if c.ReservedRate < 0 || c.ReservedRate > RateDenominator {
		return errors.Wrapf(errors.ErrModel, "reserved rate: %d", c.ReservedRate)
	}
	if c.BondingCurveRate < 0 || c.BondingCurveRate > RateDenominator {
		return errors.Wrapf(errors.ErrModel, "bonding curve rate: %d", c.BondingCurveRate)
	}
	if c.ReconfigurationBondingCurveRate < 0 || c.ReconfigurationBondingCurveRate > RateDenominator {
		return errors.Wrapf(errors.ErrModel, "reconfiguration bonding curve rate: %d", c.ReconfigurationBondingCurveRate)
	}
	if c.Delegate == "" && (c.UseDelegateOnPay || c.UseDelegateOnRedeem) {
		return errors.Wrap(errors.ErrModel, "delegate use enabled without a delegate")
	}
	return nil
}

// Cycle is one active funding cycle of a project.
type Cycle struct {
	ProjectID int64
	// Number increases by one with every activated configuration.
	Number int64
	// ConfigID identifies the configuration this cycle was created
	// from. Splits are stored per (project, configuration).
	ConfigID int64
	Target   int64
	Currency string
	Weight   fount.Fraction
	// Fee is the protocol fee rate, out of 200, captured at
	// configuration time.
	Fee int32
	// Tapped is the amount already withdrawn this cycle, denominated
	// in Currency.
	Tapped int64
	Config Config
}

func (c *Cycle) Validate() error {
	if c.ProjectID <= 0 {
		return errors.Wrap(errors.ErrModel, "project id")
	}
	if c.Number <= 0 {
		return errors.Wrap(errors.ErrModel, "cycle number")
	}
	if c.Tapped < 0 || c.Tapped > c.Target {
		return errors.Wrapf(errors.ErrModel, "tapped: %d", c.Tapped)
	}
	if c.Fee < 0 || c.Fee > RateDenominator {
		return errors.Wrapf(errors.ErrModel, "fee: %d", c.Fee)
	}
	if err := (Properties{Target: c.Target, Currency: c.Currency, Weight: c.Weight}).Validate(); err != nil {
		return err
	}
	return c.Config.Validate()
}

// Schedule is the stored state of one project: the live cycle, an
// optionally queued reconfiguration and its ballot state.
type Schedule struct {
	Current *Cycle
	Queued  *Cycle
	Ballot  int32
}

var _ orm.Model = (*Schedule)(nil)

func (s *Schedule) Validate() error {
	if s.Current != nil {
		if err := s.Current.Validate(); err != nil {
			return errors.Wrap(err, "current")
		}
	}
	if s.Queued != nil {
		if err := s.Queued.Validate(); err != nil {
			return errors.Wrap(err, "queued")
		}
	}
	if s.Ballot < BallotNone || s.Ballot > BallotFailed {
		return errors.Wrapf(errors.ErrModel, "ballot state: %d", s.Ballot)
	}
	return nil
}

// NewScheduleBucket returns a bucket for per-project cycle schedules.
func NewScheduleBucket() orm.Bucket {
	return orm.NewBucket("cycle")
}

func projectKey(projectID int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(projectID))
	return k
}
