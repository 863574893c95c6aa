/*
Package tickets implements the project-scoped claim token ledger.
Tickets are minted when deposits arrive and burned on redemption. Each
holder keeps a staked and an unstaked sub-balance; operations carry a
preference flag selecting which representation to touch first.
*/
package tickets
