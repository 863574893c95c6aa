package terminal

import (
	"github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func (a *ProjectAccount) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *ProjectAccount) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}
