package splits

import (
	"github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (l *SplitList) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(l)
}

func (l *SplitList) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, l)
}
