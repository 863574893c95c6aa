/*
Package fount defines the common types used across the funding terminal
ledger: the key-value store interfaces every extension operates on, the
condition based address scheme, fractions for prices and mint weights,
and the Persistent serialization contract for stored models.

The accounting logic lives under x/terminal. The remaining x/ packages
are the collaborator stores it orchestrates: x/cash (settlement asset
wallets), x/tickets (project claim tokens), x/cycles (funding cycle
configuration), x/splits (payout and ticket recipients), x/prices
(currency conversion), x/projects (ownership) and x/directory (project
to terminal routing).
*/
package fount
