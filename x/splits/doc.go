/*
Package splits stores the ordered recipient lists used to distribute
tap payouts and reserved ticket prints. Percentages are expressed in
basis points out of 10000 and the recipients of a list must not claim
more than the whole.
*/
package splits
