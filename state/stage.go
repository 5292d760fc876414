// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/kv"
	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/vaultinfo"
)

// Stage buffers record and vault info writes.
type Stage struct {
	repo    *Repository
	bulk    kv.Bulk
	records map[stake.Address]*record.Record
}

// PutRecord stages the owner's record.
func (s *Stage) PutRecord(owner stake.Address, rec *record.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := kv.Bucket(recordStoreName).NewPutter(s.bulk).Put(owner.Bytes(), data); err != nil {
		return errors.Wrap(err, "put record")
	}
	s.records[owner] = rec.Copy()
	return nil
}

// DeleteRecord stages the removal of the owner's record.
func (s *Stage) DeleteRecord(owner stake.Address) error {
	if err := kv.Bucket(recordStoreName).NewPutter(s.bulk).Delete(owner.Bytes()); err != nil {
		return errors.Wrap(err, "delete record")
	}
	s.records[owner] = &record.Record{}
	return nil
}

// PutVaultInfo stages the vault counters.
func (s *Stage) PutVaultInfo(info *vaultinfo.Info) error {
	data, err := encodeVaultInfo(info)
	if err != nil {
		return err
	}
	if err := kv.Bucket(metaStoreName).NewPutter(s.bulk).Put(vaultInfoKey, data); err != nil {
		return errors.Wrap(err, "put vault info")
	}
	return nil
}

// Len returns the number of staged writes.
func (s *Stage) Len() int {
	return s.bulk.Len()
}

// Commit writes all staged values in one atomic batch.
func (s *Stage) Commit() error {
	if err := s.bulk.Write(); err != nil {
		return errors.Wrap(err, "commit stage")
	}
	for owner, rec := range s.records {
		s.repo.cache.Add(owner, rec)
	}
	return nil
}
