package terminal

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
	"github.com/fount-one/fount/x/cycles"
)

// ProjectAccount is the terminal's durable accounting record for one
// project.
type ProjectAccount struct {
	// Balance is the amount of base units custodied for the project.
	Balance int64

	// TicketTracker is the signed reserved-ticket position. When it
	// equals the ticket supply there is nothing left to process. Below
	// the supply it marks unprocessed mints, below zero it additionally
	// carries burns and fully reserved deposits that happened before
	// processing.
	TicketTracker int64

	// Preconfigured counts the tickets printed through the premine
	// window. The window stays open only while every circulating ticket
	// is a premined one.
	Preconfigured int64
}

var _ orm.Model = (*ProjectAccount)(nil)

func (a *ProjectAccount) Validate() error {
	if a.Balance < 0 {
		return errors.Wrap(errors.ErrModel, "negative balance")
	}
	if a.Preconfigured < 0 {
		return errors.Wrap(errors.ErrModel, "negative premined count")
	}
	return nil
}

// NewAccountBucket returns a bucket for project accounts. Each terminal
// instance namespaces its accounts with its own name.
func NewAccountBucket(name string) orm.Bucket {
	return orm.NewBucket("termacct_" + name)
}

func accountKey(projectID int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(projectID))
	return k
}

// Configuration is the gconf singleton of the terminal package.
type Configuration struct {
	// Governor may change the fee and extend the migration allow list.
	Governor fount.Address

	// FeeRate is the protocol fee captured into new funding cycle
	// configurations, out of 200.
	FeeRate int32

	// ProtocolProjectID is the project that collects tap fees.
	ProtocolProjectID int64

	// BaseCurrency is the denomination of custodied balances.
	BaseCurrency string
}

func (c *Configuration) Validate() error {
	if err := c.Governor.Validate(); err != nil {
		return errors.Wrap(err, "governor")
	}
	if c.FeeRate < 0 || c.FeeRate > cycles.RateDenominator {
		return errors.Wrapf(errors.ErrModel, "fee rate: %d", c.FeeRate)
	}
	if c.ProtocolProjectID <= 0 {
		return errors.Wrap(errors.ErrModel, "protocol project id")
	}
	if c.BaseCurrency == "" {
		return errors.Wrap(errors.ErrEmpty, "base currency")
	}
	return nil
}
