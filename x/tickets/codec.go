package tickets

import (
	"github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (w *TicketWallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

func (w *TicketWallet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}

func (s *TicketSupply) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *TicketSupply) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}
