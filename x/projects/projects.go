/*
Package projects is the minimal ownership registry. A project is a
sequence-assigned identifier bound to an owner address and a unique
handle. Everything else about a project lives in the other stores.
*/
package projects

import (
	"encoding/binary"

	"github.com/tendermint/go-amino"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
	"github.com/fount-one/fount/orm"
)

var cdc = amino.NewCodec()

// Project binds an identifier to its owner.
type Project struct {
	Owner  fount.Address
	Handle string
}

var _ orm.Model = (*Project)(nil)

func (p *Project) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Project) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func (p *Project) Validate() error {
	if err := p.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if p.Handle == "" {
		return errors.Wrap(errors.ErrEmpty, "handle")
	}
	return nil
}

// NewProjectBucket returns a bucket for project records.
func NewProjectBucket() orm.Bucket {
	return orm.NewBucket("project")
}

func projectKey(projectID int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(projectID))
	return k
}

// Register manages project creation and ownership lookups.
type Register struct {
	bucket orm.Bucket
	seq    orm.Sequence
}

func NewRegister() *Register {
	return &Register{
		bucket: NewProjectBucket(),
		seq:    orm.NewSequence("project", "id"),
	}
}

// Create registers a new project and returns its identifier. The
// handle must be unique across all projects.
func (r *Register) Create(db fount.KVStore, owner fount.Address, handle string) (int64, error) {
	p := Project{Owner: owner, Handle: handle}
	if err := p.Validate(); err != nil {
		return 0, err
	}

	handleKey := []byte("handle:" + handle)
	switch taken, err := db.Has(handleKey); {
	case err != nil:
		return 0, err
	case taken:
		return 0, errors.Wrapf(errors.ErrDuplicate, "handle %q", handle)
	}

	id, err := r.seq.NextInt(db)
	if err != nil {
		return 0, err
	}
	if err := r.bucket.Put(db, projectKey(id), &p); err != nil {
		return 0, err
	}
	if err := db.Set(handleKey, projectKey(id)); err != nil {
		return 0, err
	}
	return id, nil
}

// OwnerOf returns the owner address of the given project.
func (r *Register) OwnerOf(db fount.ReadOnlyKVStore, projectID int64) (fount.Address, error) {
	var p Project
	if err := r.bucket.One(db, projectKey(projectID), &p); err != nil {
		return nil, errors.Wrapf(err, "project %d", projectID)
	}
	return p.Owner, nil
}

// TransferOwnership hands the project over to a new owner. Only the
// current owner may do this.
func (r *Register) TransferOwnership(db fount.KVStore, caller fount.Address, projectID int64, newOwner fount.Address) error {
	var p Project
	if err := r.bucket.One(db, projectKey(projectID), &p); err != nil {
		return errors.Wrapf(err, "project %d", projectID)
	}
	if !p.Owner.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "not the project owner")
	}
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	p.Owner = newOwner
	return r.bucket.Put(db, projectKey(projectID), &p)
}
