// Package founttest provides deterministic helpers for tests across
// the repository.
package founttest

import (
	"encoding/binary"
	"sync/atomic"

	fount "github.com/fount-one/fount"
)

var addressCounter int64

// NewAddress returns a new unique address. Generated addresses are
// deterministic within a process, which keeps test failures readable.
func NewAddress() fount.Address {
	n := atomic.AddInt64(&addressCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(n))
	return fount.NewCondition("test", "account", data).Address()
}

// NewCondition returns a new unique condition, for tests that need the
// pre-image of an address.
func NewCondition() fount.Condition {
	n := atomic.AddInt64(&addressCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(n))
	return fount.NewCondition("test", "account", data)
}
