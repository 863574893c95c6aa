package splits

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// PercentDenominator is the denominator of split percentages.
const PercentDenominator = 10000

// Split is one configured recipient of a distribution.
type Split struct {
	// Percent of the distributed total this split claims, in basis
	// points out of 10000.
	Percent int32

	// Beneficiary receives the cut directly, unless a project or
	// allocator routing is configured below.
	Beneficiary fount.Address

	// ProjectID, when not zero, routes the cut as a deposit into that
	// project with Beneficiary as the ticket beneficiary.
	ProjectID int64

	// Allocator, when not empty, names a registered funds allocator
	// that takes custody of the cut.
	Allocator string

	// PreferUnstaked selects the minted ticket representation for
	// ticket splits and deposits routed to a project.
	PreferUnstaked bool
}

func (s Split) Validate() error {
	if s.Percent <= 0 || s.Percent > PercentDenominator {
		return errors.Wrapf(errors.ErrModel, "percent: %d", s.Percent)
	}
	if len(s.Beneficiary) == 0 && s.ProjectID == 0 && s.Allocator == "" {
		return errors.Wrap(errors.ErrModel, "no recipient")
	}
	if len(s.Beneficiary) != 0 {
		if err := s.Beneficiary.Validate(); err != nil {
			return errors.Wrap(err, "beneficiary")
		}
	}
	if s.ProjectID < 0 {
		return errors.Wrap(errors.ErrModel, "project id")
	}
	return nil
}

// SplitList is an ordered collection of splits for one (project,
// configuration) pair.
type SplitList struct {
	Splits []Split
}

var _ orm.Model = (*SplitList)(nil)

func (l *SplitList) Validate() error {
	var total int64
	for i, s := range l.Splits {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "split %d", i)
		}
		total += int64(s.Percent)
	}
	if total > PercentDenominator {
		return errors.Wrapf(errors.ErrModel, "splits claim %d of %d", total, PercentDenominator)
	}
	return nil
}

// NewSplitBucket returns a bucket for split lists.
func NewSplitBucket() orm.Bucket {
	return orm.NewBucket("splits")
}

func listKey(kind byte, projectID, configID int64) []byte {
	k := make([]byte, 1+8+8)
	k[0] = kind
	binary.BigEndian.PutUint64(k[1:9], uint64(projectID))
	binary.BigEndian.PutUint64(k[9:], uint64(configID))
	return k
}

const (
	payoutKind = byte('p')
	ticketKind = byte('t')
)
