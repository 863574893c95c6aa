package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/x/splits"
)

// Record is one audit entry describing a completed state change.
type Record interface {
	Kind() string
}

// Recorder consumes audit records. Records are delivered only after the
// operation that produced them committed.
type Recorder interface {
	Record(rec Record)
}

// NopRecorder drops every record.
type NopRecorder struct{}

func (NopRecorder) Record(Record) {}

type PayRecord struct {
	CycleNumber int64
	ProjectID   int64
	Payer       fount.Address
	Beneficiary fount.Address
	Amount      int64
	Minted      int64
	Memo        string
}

func (PayRecord) Kind() string { return "pay" }

type TapRecord struct {
	CycleNumber int64
	ProjectID   int64
	Caller      fount.Address
	Owner       fount.Address
	Amount      int64
	Currency    string
	Converted   int64
	Fee         int64
	Distributed int64
	Leftover    int64
}

func (TapRecord) Kind() string { return "tap" }

type RedeemRecord struct {
	ProjectID   int64
	Holder      fount.Address
	Destination fount.Address
	Count       int64
	Proceeds    int64
	Memo        string
}

func (RedeemRecord) Kind() string { return "redeem" }

type MigrateRecord struct {
	ProjectID int64
	To        fount.Address
	Amount    int64
}

func (MigrateRecord) Kind() string { return "migrate" }

type AddToBalanceRecord struct {
	ProjectID    int64
	Caller       fount.Address
	Amount       int64
	TrackerReset bool
}

func (AddToBalanceRecord) Kind() string { return "add_to_balance" }

type PrintReservedRecord struct {
	ProjectID int64
	Count     int64
	Owner     fount.Address
	OwnerCut  int64
	Memo      string
}

func (PrintReservedRecord) Kind() string { return "print_reserved" }

type PrintPreminedRecord struct {
	ProjectID   int64
	Beneficiary fount.Address
	Amount      int64
	Currency    string
	Count       int64
	Memo        string
}

func (PrintPreminedRecord) Kind() string { return "print_premined" }

type AllowMigrationRecord struct {
	Terminal fount.Address
}

func (AllowMigrationRecord) Kind() string { return "allow_migration" }

type PayoutSplitRecord struct {
	ProjectID   int64
	CycleNumber int64
	Split       splits.Split
	Amount      int64
}

func (PayoutSplitRecord) Kind() string { return "payout_split" }

type TicketSplitRecord struct {
	ProjectID int64
	ConfigID  int64
	Split     splits.Split
	Count     int64
}

func (TicketSplitRecord) Kind() string { return "ticket_split" }
