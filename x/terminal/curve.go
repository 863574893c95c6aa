package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/x/cycles"
)

// claimableProceeds prices count tickets against the overflow using the
// bonding curve:
//
//	base = overflow * count / supply
//	proceeds = base * (rate + count*(200-rate)/supply) / 200
//
// where supply counts circulating plus pending reserved tickets. A full
// rate degenerates to the proportional base, a zero rate to nothing.
// Redeeming the entire supply always claims the entire overflow.
func claimableProceeds(overflow, count, supply int64, rate int32) (int64, error) {
	if rate < 0 || rate > cycles.RateDenominator {
		return 0, errors.Wrapf(errors.ErrInput, "bonding curve rate: %d", rate)
	}
	if count < 0 || count > supply {
		return 0, errors.Wrapf(errors.ErrAmount, "count %d of supply %d", count, supply)
	}
	if overflow == 0 || count == 0 {
		return 0, nil
	}
	if count == supply {
		return overflow, nil
	}
	base, err := mulDiv(overflow, count, supply)
	if err != nil {
		return 0, err
	}
	if rate == cycles.RateDenominator {
		return base, nil
	}
	if rate == 0 {
		return 0, nil
	}
	frac, err := mulDiv(count, cycles.RateDenominator-int64(rate), supply)
	if err != nil {
		return 0, err
	}
	return mulDiv(base, int64(rate)+frac, cycles.RateDenominator)
}

// overflowOf returns how much of the custodied balance exceeds what the
// active cycle may still withdraw. Only the overflow is redeemable.
func (c *Controller) overflowOf(db fount.ReadOnlyKVStore, cycle *cycles.Cycle, balance int64) (int64, error) {
	limit := cycle.Target - cycle.Tapped
	if limit <= 0 {
		return balance, nil
	}
	price, err := c.prices.PriceOf(db, cycle.Currency)
	if err != nil {
		return 0, err
	}
	reserved, err := convertToBase(limit, price)
	if err != nil {
		return 0, err
	}
	if balance <= reserved {
		return 0, nil
	}
	return balance - reserved, nil
}
