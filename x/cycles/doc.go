/*
Package cycles stores the funding cycle configuration of each project.
A cycle carries the spending target, denomination currency, mint weight
and fee, together with an explicit configuration record for pause
flags, reserved rate, bonding curve rates and delegate selection.

A reconfiguration of a project with a live cycle is queued and subject
to an approval ballot; the queued cycle replaces the current one only
once the ballot reports approval. The ballot itself is an external
concern, its outcome is injected through SetBallotState.
*/
package cycles
