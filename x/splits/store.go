package splits

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// Store manages payout and ticket split lists.
type Store struct {
	bucket orm.Bucket
}

func NewStore() *Store {
	return &Store{bucket: NewSplitBucket()}
}

// SetPayoutSplits replaces the payout split list for the given project
// and configuration.
func (s *Store) SetPayoutSplits(db fount.KVStore, projectID, configID int64, list []Split) error {
	return s.set(db, payoutKind, projectID, configID, list)
}

// SetTicketSplits replaces the ticket split list for the given project
// and configuration.
func (s *Store) SetTicketSplits(db fount.KVStore, projectID, configID int64, list []Split) error {
	return s.set(db, ticketKind, projectID, configID, list)
}

// PayoutSplits returns the payout split list of the given project and
// configuration. A missing list is empty, not an error.
func (s *Store) PayoutSplits(db fount.ReadOnlyKVStore, projectID, configID int64) ([]Split, error) {
	return s.get(db, payoutKind, projectID, configID)
}

// TicketSplits returns the ticket split list of the given project and
// configuration. A missing list is empty, not an error.
func (s *Store) TicketSplits(db fount.ReadOnlyKVStore, projectID, configID int64) ([]Split, error) {
	return s.get(db, ticketKind, projectID, configID)
}

func (s *Store) set(db fount.KVStore, kind byte, projectID, configID int64, list []Split) error {
	if projectID <= 0 {
		return errors.Wrap(errors.ErrInput, "project id")
	}
	if configID <= 0 {
		return errors.Wrap(errors.ErrInput, "config id")
	}
	return s.bucket.Put(db, listKey(kind, projectID, configID), &SplitList{Splits: list})
}

func (s *Store) get(db fount.ReadOnlyKVStore, kind byte, projectID, configID int64) ([]Split, error) {
	var list SplitList
	switch err := s.bucket.One(db, listKey(kind, projectID, configID), &list); {
	case err == nil:
		return list.Splits, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
