package tickets

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

// TicketWallet holds one account's claim tokens for a single project,
// split into the staked and unstaked representation.
type TicketWallet struct {
	Staked   int64
	Unstaked int64
}

var _ orm.Model = (*TicketWallet)(nil)

func (w *TicketWallet) Validate() error {
	if w.Staked < 0 || w.Unstaked < 0 {
		return errors.Wrap(errors.ErrModel, "negative ticket balance")
	}
	return nil
}

// Total returns the combined balance of both representations.
func (w *TicketWallet) Total() int64 {
	return w.Staked + w.Unstaked
}

// TicketSupply tracks the total number of tickets in circulation for a
// single project.
type TicketSupply struct {
	Total int64
}

var _ orm.Model = (*TicketSupply)(nil)

func (s *TicketSupply) Validate() error {
	if s.Total < 0 {
		return errors.Wrap(errors.ErrModel, "negative supply")
	}
	return nil
}

// NewWalletBucket returns a bucket for per-holder ticket balances.
func NewWalletBucket() orm.Bucket {
	return orm.NewBucket("tickets")
}

// NewSupplyBucket returns a bucket for per-project ticket supply.
func NewSupplyBucket() orm.Bucket {
	return orm.NewBucket("ticketsupply")
}

func projectKey(projectID int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(projectID))
	return k
}

func holderKey(projectID int64, holder fount.Address) []byte {
	return append(projectKey(projectID), holder...)
}
