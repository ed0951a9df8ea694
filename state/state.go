// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/kv"
	"github.com/Mentors4EDU/gsn/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Account is the persisted form of a ledger account.
type Account struct {
	Balance *big.Int
}

// IsEmpty returns whether the account holds nothing.
func (a *Account) IsEmpty() bool {
	return a.Balance == nil || a.Balance.Sign() == 0
}

type storageKey struct {
	addr gsn.Address
	key  gsn.Bytes32
}

// State manages the ledger world state: account balances plus per-account
// structured storage. All mutations are journaled and can be reverted to a
// checkpoint until staged into the underlying kv store.
type State struct {
	kv    kv.GetPutter
	sm    *stackedmap.StackedMap
	cache map[any]any // mirrors values loaded from kv
	err   error       // first kv access failure
}

// New create state object.
func New(store kv.GetPutter) *State {
	state := &State{
		kv:    store,
		cache: make(map[any]any),
	}
	state.sm = stackedmap.New(func(key any) (any, bool) {
		return state.cacheGetter(key)
	})
	// base level; checkpoints handed to callers start at 1
	state.sm.Push()
	return state
}

// Err returns the first kv access failure the state has seen, if any.
// A state with a pending error must not be staged.
func (s *State) Err() error {
	return s.err
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = &Error{err}
	}
}

func accountStoreKey(addr gsn.Address) []byte {
	return append([]byte("a"), addr.Bytes()...)
}

func storageStoreKey(addr gsn.Address, key gsn.Bytes32) []byte {
	return gsn.Blake2b([]byte("s"), addr.Bytes(), key.Bytes()).Bytes()
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool) {
	if v, ok := s.cache[key]; ok {
		return v, true
	}
	switch k := key.(type) {
	case gsn.Address: // get account
		acc := s.loadAccount(k)
		s.cache[key] = acc
		return acc, true
	case storageKey: // get raw storage
		raw := s.loadStorage(k)
		s.cache[key] = raw
		return raw, true
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) loadAccount(addr gsn.Address) *Account {
	data, err := s.kv.Get(accountStoreKey(addr))
	if err != nil {
		if !s.kv.IsNotFound(err) {
			s.setError(err)
		}
		return &Account{Balance: &big.Int{}}
	}
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		s.setError(err)
		return &Account{Balance: &big.Int{}}
	}
	return &acc
}

func (s *State) loadStorage(k storageKey) []byte {
	data, err := s.kv.Get(storageStoreKey(k.addr, k.key))
	if err != nil {
		if !s.kv.IsNotFound(err) {
			s.setError(err)
		}
		return nil
	}
	return data
}

// getAccount gets account by address. The returned account must not be modified.
func (s *State) getAccount(addr gsn.Address) *Account {
	v, _ := s.sm.Get(addr)
	return v.(*Account)
}

func (s *State) updateAccount(addr gsn.Address, acc *Account) {
	s.sm.Put(addr, acc)
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr gsn.Address) *big.Int {
	return new(big.Int).Set(s.getAccount(addr).Balance)
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr gsn.Address, balance *big.Int) {
	s.updateAccount(addr, &Account{Balance: new(big.Int).Set(balance)})
}

// AddBalance adds amount to the balance of the given address.
func (s *State) AddBalance(addr gsn.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	bal := s.getAccount(addr).Balance
	s.updateAccount(addr, &Account{Balance: new(big.Int).Add(bal, amount)})
}

// SubBalance subtracts amount from the balance of the given address.
// It returns false, leaving the balance untouched, if the balance is insufficient.
func (s *State) SubBalance(addr gsn.Address, amount *big.Int) bool {
	bal := s.getAccount(addr).Balance
	if bal.Cmp(amount) < 0 {
		return false
	}
	if amount.Sign() == 0 {
		return true
	}
	s.updateAccount(addr, &Account{Balance: new(big.Int).Sub(bal, amount)})
	return true
}

// Exists returns whether an account exists with a non-empty state.
func (s *State) Exists(addr gsn.Address) bool {
	return !s.getAccount(addr).IsEmpty()
}

// GetRawStorage gets raw storage for the given address and key.
func (s *State) GetRawStorage(addr gsn.Address, key gsn.Bytes32) []byte {
	v, _ := s.sm.Get(storageKey{addr, key})
	if v == nil {
		return nil
	}
	return v.([]byte)
}

// SetRawStorage sets raw storage for the given address and key.
// Empty raw deletes the storage slot.
func (s *State) SetRawStorage(addr gsn.Address, key gsn.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage sets storage to the encoded content produced by enc.
func (s *State) EncodeStorage(addr gsn.Address, key gsn.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetRawStorage(addr, key, raw)
}

// DecodeStorage decodes stored content with the given dec.
func (s *State) DecodeStorage(addr gsn.Address, key gsn.Bytes32, dec func([]byte) error) {
	if err := dec(s.GetRawStorage(addr, key)); err != nil {
		s.setError(err)
	}
}

// GetStructuredStorage rlp-decodes stored content into val.
// val is left untouched if the storage slot is empty.
func (s *State) GetStructuredStorage(addr gsn.Address, key gsn.Bytes32, val any) {
	s.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage rlp-encodes val into the storage slot.
func (s *State) SetStructuredStorage(addr gsn.Address, key gsn.Bytes32, val any) {
	s.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint of the given revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}
