// Package gconf provides access to a per-package configuration
// singleton. Each package stores exactly one configuration record in
// the database, under a key derived from the package name.
package gconf

import (
	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// Configuration is implemented by any record that can be stored as a
// package configuration.
type Configuration interface {
	fount.Persistent
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and writes it to the special
// configuration singleton key for the given package name.
func Save(db fount.KVStore, pkg string, src Configuration) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration singleton of the given package into
// dst. ErrNotFound is returned if no configuration was ever saved.
func Load(db fount.ReadOnlyKVStore, pkg string, dst Configuration) error {
	key := dbKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}
