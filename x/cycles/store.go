package cycles

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// Store manages the funding cycle schedule of every project.
type Store struct {
	bucket orm.Bucket
}

func NewStore() *Store {
	return &Store{bucket: NewScheduleBucket()}
}

func (s *Store) schedule(db fount.ReadOnlyKVStore, projectID int64) (*Schedule, error) {
	var sched Schedule
	switch err := s.bucket.One(db, projectKey(projectID), &sched); {
	case err == nil:
		return &sched, nil
	case errors.ErrNotFound.Is(err):
		return &Schedule{}, nil
	default:
		return nil, err
	}
}

// Configure installs a new funding cycle configuration for the
// project. The first configuration of a project activates right away,
// as does any configuration with activateImmediately set. Otherwise
// the configuration is queued behind an approval ballot.
func (s *Store) Configure(db fount.KVStore, projectID int64, props Properties, config Config, fee int32, activateImmediately bool) (*Cycle, error) {
	if projectID <= 0 {
		return nil, errors.Wrap(errors.ErrInput, "project id")
	}
	if err := props.Validate(); err != nil {
		return nil, errors.Wrap(err, "properties")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if fee < 0 || fee > RateDenominator {
		return nil, errors.Wrapf(errors.ErrInput, "fee: %d", fee)
	}

	sched, err := s.schedule(db, projectID)
	if err != nil {
		return nil, err
	}

	weight := props.Weight
	if weight.IsZero() {
		weight = BaseWeight
	}

	var number, configID int64 = 1, 1
	if sched.Current != nil {
		number = sched.Current.Number + 1
		configID = sched.Current.ConfigID + 1
	}
	if sched.Queued != nil && sched.Queued.ConfigID >= configID {
		configID = sched.Queued.ConfigID + 1
	}

	cycle := &Cycle{
		ProjectID: projectID,
		Number:    number,
		ConfigID:  configID,
		Target:    props.Target,
		Currency:  props.Currency,
		Weight:    weight,
		Fee:       fee,
		Config:    config,
	}

	if sched.Current == nil || activateImmediately {
		sched.Current = cycle
		sched.Queued = nil
		sched.Ballot = BallotNone
	} else {
		sched.Queued = cycle
		sched.Ballot = BallotActive
	}

	if err := s.bucket.Put(db, projectKey(projectID), sched); err != nil {
		return nil, err
	}
	return cycle, nil
}

// CurrentOf returns the project's active cycle, activating an approved
// queued configuration first. It returns nil without an error if the
// project was never configured.
func (s *Store) CurrentOf(db fount.KVStore, projectID int64) (*Cycle, error) {
	sched, err := s.schedule(db, projectID)
	if err != nil {
		return nil, err
	}
	if sched.Queued != nil && sched.Ballot == BallotApproved {
		sched.Queued.Number = sched.Current.Number + 1
		sched.Current = sched.Queued
		sched.Queued = nil
		sched.Ballot = BallotNone
		if err := s.bucket.Put(db, projectKey(projectID), sched); err != nil {
			return nil, err
		}
	}
	return sched.Current, nil
}

// RegisterTap checks the requested amount against the remaining
// spending limit of the active cycle and records it as tapped. It
// returns nil without an error if the project has no cycle.
func (s *Store) RegisterTap(db fount.KVStore, projectID int64, amount int64) (*Cycle, error) {
	if amount <= 0 {
		return nil, errors.Wrap(errors.ErrAmount, "non-positive tap")
	}
	cycle, err := s.CurrentOf(db, projectID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, nil
	}
	if cycle.Tapped+amount > cycle.Target {
		return nil, errors.Wrapf(errors.ErrAmount, "insufficient remaining target: %d < %d",
			cycle.Target-cycle.Tapped, amount)
	}
	cycle.Tapped += amount

	sched, err := s.schedule(db, projectID)
	if err != nil {
		return nil, err
	}
	sched.Current = cycle
	if err := s.bucket.Put(db, projectKey(projectID), sched); err != nil {
		return nil, err
	}
	return cycle, nil
}

// BallotStateOf reports the approval state of a queued
// reconfiguration. Projects without a queued configuration report
// BallotNone.
func (s *Store) BallotStateOf(db fount.ReadOnlyKVStore, projectID int64) (int32, error) {
	sched, err := s.schedule(db, projectID)
	if err != nil {
		return BallotNone, err
	}
	if sched.Queued == nil {
		return BallotNone, nil
	}
	return sched.Ballot, nil
}

// SetBallotState injects the outcome of the external approval ballot
// for the queued configuration.
func (s *Store) SetBallotState(db fount.KVStore, projectID int64, state int32) error {
	sched, err := s.schedule(db, projectID)
	if err != nil {
		return err
	}
	if sched.Queued == nil {
		return errors.Wrap(errors.ErrState, "no queued configuration")
	}
	if state < BallotNone || state > BallotFailed {
		return errors.Wrapf(errors.ErrInput, "ballot state: %d", state)
	}
	if state == BallotFailed {
		sched.Queued = nil
		sched.Ballot = BallotNone
	} else {
		sched.Ballot = state
	}
	return s.bucket.Put(db, projectKey(projectID), sched)
}
