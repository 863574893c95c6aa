/*
Package cash keeps track of settlement-asset balances. Every account is
a wallet holding a non-negative number of base units. The terminal
custodies all pooled deposits in a wallet derived from its own
condition, so a payout or redemption is a plain wallet-to-wallet move.
*/
package cash
