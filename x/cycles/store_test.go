package cycles

import (
	"testing"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/founttest/assert"
	"github.com/fount-one/fount/store"
)

func testProps() Properties {
	return Properties{
		Target:   1000,
		Currency: "BASE",
		Weight:   fount.Frac(100, 1),
	}
}

func TestFirstConfigureActivates(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	cycle, err := s.Configure(db, 1, testProps(), Config{}, 10, false)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), cycle.Number)
	assert.Equal(t, int32(10), cycle.Fee)

	current, err := s.CurrentOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), current.Number)

	state, err := s.BallotStateOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, BallotNone, state)
}

func TestZeroWeightSelectsBaseWeight(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	props := testProps()
	props.Weight = fount.Fraction{}
	cycle, err := s.Configure(db, 1, props, Config{}, 0, false)
	assert.Nil(t, err)
	assert.Equal(t, BaseWeight, cycle.Weight)
}

func TestReconfigurationQueuesBehindBallot(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	_, err := s.Configure(db, 1, testProps(), Config{}, 0, false)
	assert.Nil(t, err)

	props := testProps()
	props.Target = 2000
	_, err = s.Configure(db, 1, props, Config{}, 0, false)
	assert.Nil(t, err)

	state, err := s.BallotStateOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, BallotActive, state)

	// The current cycle is unchanged while the ballot is pending.
	current, err := s.CurrentOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), current.Target)

	// Approval promotes the queued configuration.
	assert.Nil(t, s.SetBallotState(db, 1, BallotApproved))
	current, err = s.CurrentOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(2000), current.Target)
	assert.Equal(t, int64(2), current.Number)

	state, err = s.BallotStateOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, BallotNone, state)
}

func TestFailedBallotDropsQueued(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	_, err := s.Configure(db, 1, testProps(), Config{}, 0, false)
	assert.Nil(t, err)
	props := testProps()
	props.Target = 2000
	_, err = s.Configure(db, 1, props, Config{}, 0, false)
	assert.Nil(t, err)

	assert.Nil(t, s.SetBallotState(db, 1, BallotFailed))

	current, err := s.CurrentOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), current.Target)
	state, err := s.BallotStateOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, BallotNone, state)
}

func TestRegisterTapEnforcesTarget(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	_, err := s.Configure(db, 1, testProps(), Config{}, 0, false)
	assert.Nil(t, err)

	cycle, err := s.RegisterTap(db, 1, 600)
	assert.Nil(t, err)
	assert.Equal(t, int64(600), cycle.Tapped)

	_, err = s.RegisterTap(db, 1, 500)
	assert.IsErr(t, errors.ErrAmount, err)

	cycle, err = s.RegisterTap(db, 1, 400)
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), cycle.Tapped)
}

func TestRegisterTapWithoutCycle(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	cycle, err := s.RegisterTap(db, 9, 100)
	assert.Nil(t, err)
	assert.Nil(t, cycle)
}

func TestConfigValidation(t *testing.T) {
	db := store.MemStore()
	s := NewStore()

	_, err := s.Configure(db, 1, testProps(), Config{ReservedRate: 201}, 0, false)
	assert.IsErr(t, errors.ErrModel, err)

	_, err = s.Configure(db, 1, testProps(), Config{UseDelegateOnPay: true}, 0, false)
	assert.IsErr(t, errors.ErrModel, err)
}
