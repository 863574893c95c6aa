/*
Package directory routes each project to the terminal that currently
handles its accounting. The terminal consults the directory before
accepting balance and updates it when a project migrates away.
*/
package directory

import (
	"encoding/binary"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// Store is the project to terminal routing table. Values are raw
// terminal addresses, no codec is involved.
type Store struct {
	prefix []byte
}

func NewStore() *Store {
	return &Store{prefix: []byte("terminalof:")}
}

func (s *Store) key(projectID int64) []byte {
	k := make([]byte, 0, len(s.prefix)+8)
	k = append(k, s.prefix...)
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], uint64(projectID))
	return append(k, id[:]...)
}

// TerminalOf returns the terminal currently registered for the
// project, or ErrNotFound if the project was never routed.
func (s *Store) TerminalOf(db fount.ReadOnlyKVStore, projectID int64) (fount.Address, error) {
	raw, err := db.Get(s.key(projectID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "project %d has no terminal", projectID)
	}
	return fount.Address(raw), nil
}

// SetTerminal points the project at the given terminal.
func (s *Store) SetTerminal(db fount.KVStore, projectID int64, terminal fount.Address) error {
	if err := terminal.Validate(); err != nil {
		return errors.Wrap(err, "terminal")
	}
	return db.Set(s.key(projectID), terminal)
}
