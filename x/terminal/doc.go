/*
Package terminal implements the accounting core of the funding
terminal: payment processing, withdrawal with fee extraction and payout
split distribution, bonding curve priced redemption, reserved ticket
reconciliation, premining and migration.

The controller owns three pieces of durable state per project: the
custodied balance, the signed reserved-ticket tracker and the premined
ticket count. Everything else belongs to the collaborator stores it is
wired to. Every public operation runs on its own cache wrap and either
commits completely or leaves no trace.
*/
package terminal
