package cash

import (
	"github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}
