package terminal

import (
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/x/cycles"
)

// unprocessedTickets derives from the signed tracker how many of the
// circulating tickets have not had their reserved share minted yet. A
// non-negative tracker marks the processed part of the supply and must
// never exceed it. A negative tracker records tickets that were burned
// or withheld before processing and counts on top of the supply.
func unprocessedTickets(tracker, totalSupply int64) (int64, error) {
	if tracker >= 0 {
		if tracker > totalSupply {
			return 0, errors.Wrapf(errors.ErrState,
				"tracker above supply: %d > %d", tracker, totalSupply)
		}
		return totalSupply - tracker, nil
	}
	u, err := subInt64(totalSupply, tracker)
	if err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "unprocessed tickets")
	}
	return u, nil
}

// reservedTickets computes how many tickets are owed to the reserved
// allocation but not yet minted. With a full reserved rate every
// unprocessed ticket is owed one to one. Otherwise the unprocessed
// tickets represent the distributed share of the configured rate and
// the reserved remainder is scaled from them, truncating.
func reservedTickets(tracker int64, rate int32, totalSupply int64) (int64, error) {
	if rate < 0 || rate > cycles.RateDenominator {
		return 0, errors.Wrapf(errors.ErrInput, "reserved rate: %d", rate)
	}
	u, err := unprocessedTickets(tracker, totalSupply)
	if err != nil {
		return 0, err
	}
	if u == 0 {
		return 0, nil
	}
	if rate == cycles.RateDenominator {
		return u, nil
	}
	scaled, err := mulDiv(u, cycles.RateDenominator, cycles.RateDenominator-int64(rate))
	if err != nil {
		return 0, errors.Wrap(ErrTrackerOverflow, "reserved tickets")
	}
	return scaled - u, nil
}
