package orm

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
)

// Sequence maintains a counter and generates a series of keys. Each
// key is greater than the last, both as NextInt as well as
// bytes.Compare on NextVal.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. A sequence uses the
// following pattern to construct its own key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db fount.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as an int.
func (s *Sequence) NextInt(db fount.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence. This
// method does not modify the sequence state.
func (s *Sequence) Latest(db fount.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	return DecodeSequence(raw), raw, nil
}

func (s *Sequence) increment(db fount.KVStore, inc int64) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, err
	}
	val := DecodeSequence(raw) + inc
	raw = EncodeSequence(val)
	err = db.Set(s.id, raw)
	return val, raw, err
}

// DecodeSequence converts the 8 byte sequence state into an int. A nil
// state decodes to zero.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(bz))
}

// EncodeSequence converts an int into the 8 byte sequence state.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
