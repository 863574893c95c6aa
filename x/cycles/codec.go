package cycles

import (
	"github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (s *Schedule) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Schedule) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}
