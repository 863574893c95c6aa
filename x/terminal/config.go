package terminal

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/gconf"
)

const pkgName = "terminal"

// SaveConf writes the terminal configuration singleton. It is meant for
// genesis initialization; later fee changes go through SetFee.
func SaveConf(db fount.KVStore, c Configuration) error {
	return gconf.Save(db, pkgName, &c)
}

func loadConf(db fount.ReadOnlyKVStore) (Configuration, error) {
	var c Configuration
	err := gconf.Load(db, pkgName, &c)
	return c, err
}
