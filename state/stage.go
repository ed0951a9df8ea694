// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/kv"
)

// Stage is the set of pending writes collected from the state journal,
// ready to be committed to the kv store in one batch.
type Stage struct {
	batch kv.Batch
	err   error
}

// Stage collects all journaled changes into a commitable stage.
// It fails if the state has seen a kv access failure.
func (s *State) Stage() (*Stage, error) {
	if s.err != nil {
		return nil, s.err
	}

	// the last journaled value per key wins
	changes := make(map[any]any)
	s.sm.Journal(func(key, value any) bool {
		changes[key] = value
		return true
	})

	batch := s.kv.NewBatch()
	for key, value := range changes {
		switch k := key.(type) {
		case gsn.Address:
			acc := value.(*Account)
			if acc.IsEmpty() {
				if err := batch.Delete(accountStoreKey(k)); err != nil {
					return nil, errors.Wrap(err, "stage account")
				}
				continue
			}
			data, err := rlp.EncodeToBytes(acc)
			if err != nil {
				return nil, errors.Wrap(err, "stage account")
			}
			if err := batch.Put(accountStoreKey(k), data); err != nil {
				return nil, errors.Wrap(err, "stage account")
			}
		case storageKey:
			raw := value.([]byte)
			if len(raw) == 0 {
				if err := batch.Delete(storageStoreKey(k.addr, k.key)); err != nil {
					return nil, errors.Wrap(err, "stage storage")
				}
				continue
			}
			if err := batch.Put(storageStoreKey(k.addr, k.key), raw); err != nil {
				return nil, errors.Wrap(err, "stage storage")
			}
		}
	}
	return &Stage{batch: batch}, nil
}

// Commit writes the staged changes into the kv store.
func (st *Stage) Commit() error {
	if st.err != nil {
		return st.err
	}
	return st.batch.Write()
}

// Reset drops the journal and caches so the state reloads from the kv store.
// Intended to be called right after a successful stage commit.
func (s *State) Reset() {
	s.sm.PopTo(0)
	s.cache = make(map[any]any)
	s.sm.Push()
}
