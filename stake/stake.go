// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/state"
)

var (
	logger = log.WithContext("pkg", "stake")

	totalBurnedKey = gsn.Blake2b([]byte("total-burned"))
)

func stakeKey(manager gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("stake"), manager.Bytes())
}

func hubAuthKey(manager, hub gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("authorized-hub"), manager.Bytes(), hub.Bytes())
}

// Info is the stake record of a relay manager.
type Info struct {
	Token        gsn.Address // asset classification the minimum-stake table keys on
	Amount       *big.Int
	UnstakeDelay uint64
	WithdrawTime uint64 // non-zero when unlock is scheduled
	Owner        gsn.Address
	Penalized    bool
}

// IsEmpty returns whether no stake was ever put up for the manager.
func (i *Info) IsEmpty() bool {
	return i.Owner.IsZero()
}

// Manager implements the stake registry: collateral escrow, hub
// authorization and the slashing entry point.
type Manager struct {
	addr  gsn.Address
	state *state.State
}

// New create a new instance.
func New(addr gsn.Address, st *state.State) *Manager {
	return &Manager{addr, st}
}

// Address returns the registry's ledger address (the escrow account).
func (m *Manager) Address() gsn.Address {
	return m.addr
}

// GetStakeInfo returns the stake record of the given manager.
func (m *Manager) GetStakeInfo(manager gsn.Address) *Info {
	var info Info
	m.state.GetStructuredStorage(m.addr, stakeKey(manager), &info)
	if info.Amount == nil {
		info.Amount = &big.Int{}
	}
	return &info
}

func (m *Manager) setStakeInfo(manager gsn.Address, info *Info) {
	m.state.SetStructuredStorage(m.addr, stakeKey(manager), info)
}

// StakeForManager locks owner collateral for the given relay manager.
// Re-staking may only top up the amount and extend the delay; the token is
// fixed once set.
func (m *Manager) StakeForManager(owner, manager, token gsn.Address, amount *big.Int, unstakeDelay uint64) error {
	info := m.GetStakeInfo(manager)
	if !info.IsEmpty() {
		if info.Owner != owner {
			return errors.New("not the stake owner")
		}
		if info.Penalized {
			return errors.New("relay manager was penalized")
		}
		if info.WithdrawTime != 0 {
			return errors.New("stake withdrawal is scheduled")
		}
		if info.Token != token {
			return errors.New("stake token cannot be changed")
		}
		if unstakeDelay < info.UnstakeDelay {
			return errors.New("unstake delay cannot be decreased")
		}
	} else {
		info.Owner = owner
		info.Token = token
	}

	if !m.state.SubBalance(owner, amount) {
		return errors.New("insufficient balance for stake")
	}
	m.state.AddBalance(m.addr, amount)

	info.Amount = new(big.Int).Add(info.Amount, amount)
	info.UnstakeDelay = unstakeDelay
	m.setStakeInfo(manager, info)

	logger.Debug("stake added", "manager", manager, "amount", amount, "delay", unstakeDelay)
	return nil
}

// AuthorizeHub lets the stake owner authorize a hub to use (and penalize)
// the manager's stake.
func (m *Manager) AuthorizeHub(caller, manager, hub gsn.Address) error {
	info := m.GetStakeInfo(manager)
	if info.IsEmpty() {
		return errors.New("relay manager not staked")
	}
	if info.Owner != caller {
		return errors.New("not the stake owner")
	}
	m.state.SetStructuredStorage(m.addr, hubAuthKey(manager, hub), true)
	return nil
}

// DeauthorizeHub revokes a hub authorization.
func (m *Manager) DeauthorizeHub(caller, manager, hub gsn.Address) error {
	info := m.GetStakeInfo(manager)
	if info.IsEmpty() {
		return errors.New("relay manager not staked")
	}
	if info.Owner != caller {
		return errors.New("not the stake owner")
	}
	m.state.SetRawStorage(m.addr, hubAuthKey(manager, hub), nil)
	return nil
}

// IsHubAuthorized returns whether the manager's stake backs the given hub.
func (m *Manager) IsHubAuthorized(manager, hub gsn.Address) bool {
	var authorized bool
	m.state.GetStructuredStorage(m.addr, hubAuthKey(manager, hub), &authorized)
	return authorized
}

// UnlockStake schedules stake withdrawal after the unstake delay.
func (m *Manager) UnlockStake(caller, manager gsn.Address, now uint64) error {
	info := m.GetStakeInfo(manager)
	if info.IsEmpty() {
		return errors.New("relay manager not staked")
	}
	if info.Owner != caller {
		return errors.New("not the stake owner")
	}
	if info.Penalized {
		return errors.New("relay manager was penalized")
	}
	if info.WithdrawTime != 0 {
		return errors.New("stake withdrawal is already scheduled")
	}
	info.WithdrawTime = now + info.UnstakeDelay
	m.setStakeInfo(manager, info)
	return nil
}

// WithdrawStake returns the collateral to the owner once the delay has passed.
func (m *Manager) WithdrawStake(caller, manager gsn.Address, now uint64) (*big.Int, error) {
	info := m.GetStakeInfo(manager)
	if info.IsEmpty() {
		return nil, errors.New("relay manager not staked")
	}
	if info.Owner != caller {
		return nil, errors.New("not the stake owner")
	}
	if info.WithdrawTime == 0 {
		return nil, errors.New("stake withdrawal is not scheduled")
	}
	if now < info.WithdrawTime {
		return nil, errors.New("stake withdrawal is not due")
	}

	amount := info.Amount
	if !m.state.SubBalance(m.addr, amount) {
		return nil, errors.New("escrow underflow")
	}
	m.state.AddBalance(info.Owner, amount)
	m.state.SetRawStorage(m.addr, stakeKey(manager), nil)

	logger.Debug("stake withdrawn", "manager", manager, "amount", amount)
	return amount, nil
}

// Penalize forfeits the manager's entire stake: half is burned, half is paid
// to the reporter. Only a hub the manager authorized may call it, and only
// once per stake.
func (m *Manager) Penalize(caller, manager, beneficiary gsn.Address) (reward *big.Int, burned *big.Int, err error) {
	info := m.GetStakeInfo(manager)
	if info.Penalized {
		return nil, nil, errors.New("already penalized")
	}
	if info.IsEmpty() || info.Amount.Sign() == 0 {
		return nil, nil, errors.New("relay manager not staked")
	}
	if !m.IsHubAuthorized(manager, caller) {
		return nil, nil, errors.New("hub not authorized to penalize")
	}

	amount := info.Amount
	reward = new(big.Int).Div(amount, big.NewInt(2))
	burned = new(big.Int).Sub(amount, reward)

	if !m.state.SubBalance(m.addr, amount) {
		return nil, nil, errors.New("escrow underflow")
	}
	m.state.AddBalance(beneficiary, reward)

	var total big.Int
	m.state.GetStructuredStorage(m.addr, totalBurnedKey, &total)
	total.Add(&total, burned)
	m.state.SetStructuredStorage(m.addr, totalBurnedKey, &total)

	info.Amount = &big.Int{}
	info.WithdrawTime = 0
	info.Penalized = true
	m.setStakeInfo(manager, info)

	logger.Info("stake penalized", "manager", manager, "reward", reward, "burned", burned)
	return reward, burned, nil
}

// TotalBurned returns the cumulative amount destroyed by penalizations.
func (m *Manager) TotalBurned() *big.Int {
	var total big.Int
	m.state.GetStructuredStorage(m.addr, totalBurnedKey, &total)
	return &total
}
