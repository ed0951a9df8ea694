// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/lvldb"
	"github.com/Mentors4EDU/gsn/state"
)

var (
	owner   = gsn.BytesToAddress([]byte("owner"))
	manager = gsn.BytesToAddress([]byte("manager"))
	hub     = gsn.BytesToAddress([]byte("hub"))
	token   = gsn.BytesToAddress([]byte("token"))
)

func newTestManager(t *testing.T) (*Manager, *state.State) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(kv)
	st.SetBalance(owner, big.NewInt(1000))
	return New(gsn.StakeManagerAddress, st), st
}

func TestStakeForManager(t *testing.T) {
	m, st := newTestManager(t)

	require.NoError(t, m.StakeForManager(owner, manager, token, big.NewInt(400), 100))

	info := m.GetStakeInfo(manager)
	assert.Equal(t, big.NewInt(400), info.Amount)
	assert.Equal(t, uint64(100), info.UnstakeDelay)
	assert.Equal(t, owner, info.Owner)
	assert.Equal(t, token, info.Token)
	assert.Equal(t, big.NewInt(600), st.GetBalance(owner))
	assert.Equal(t, big.NewInt(400), st.GetBalance(gsn.StakeManagerAddress))

	// top-up keeps token, can extend delay
	require.NoError(t, m.StakeForManager(owner, manager, token, big.NewInt(100), 200))
	info = m.GetStakeInfo(manager)
	assert.Equal(t, big.NewInt(500), info.Amount)
	assert.Equal(t, uint64(200), info.UnstakeDelay)

	assert.EqualError(t, m.StakeForManager(owner, manager, token, big.NewInt(1), 100),
		"unstake delay cannot be decreased")
	assert.EqualError(t, m.StakeForManager(owner, manager, gsn.BytesToAddress([]byte("other")), big.NewInt(1), 200),
		"stake token cannot be changed")
	assert.EqualError(t, m.StakeForManager(gsn.BytesToAddress([]byte("mallory")), manager, token, big.NewInt(1), 200),
		"not the stake owner")
	assert.EqualError(t, m.StakeForManager(owner, manager, token, big.NewInt(10000), 200),
		"insufficient balance for stake")
}

func TestHubAuthorization(t *testing.T) {
	m, _ := newTestManager(t)

	assert.EqualError(t, m.AuthorizeHub(owner, manager, hub), "relay manager not staked")

	require.NoError(t, m.StakeForManager(owner, manager, token, big.NewInt(100), 100))
	assert.False(t, m.IsHubAuthorized(manager, hub))

	require.NoError(t, m.AuthorizeHub(owner, manager, hub))
	assert.True(t, m.IsHubAuthorized(manager, hub))

	require.NoError(t, m.DeauthorizeHub(owner, manager, hub))
	assert.False(t, m.IsHubAuthorized(manager, hub))
}

func TestUnlockAndWithdraw(t *testing.T) {
	m, st := newTestManager(t)
	require.NoError(t, m.StakeForManager(owner, manager, token, big.NewInt(300), 100))

	_, err := m.WithdrawStake(owner, manager, 1000)
	assert.EqualError(t, err, "stake withdrawal is not scheduled")

	require.NoError(t, m.UnlockStake(owner, manager, 1000))
	assert.EqualError(t, m.UnlockStake(owner, manager, 1000), "stake withdrawal is already scheduled")

	_, err = m.WithdrawStake(owner, manager, 1050)
	assert.EqualError(t, err, "stake withdrawal is not due")

	amount, err := m.WithdrawStake(owner, manager, 1100)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), amount)
	assert.Equal(t, big.NewInt(1000), st.GetBalance(owner))
	assert.True(t, m.GetStakeInfo(manager).IsEmpty())
}

func TestPenalize(t *testing.T) {
	m, st := newTestManager(t)
	reporter := gsn.BytesToAddress([]byte("reporter"))

	require.NoError(t, m.StakeForManager(owner, manager, token, big.NewInt(301), 100))

	_, _, err := m.Penalize(hub, manager, reporter)
	assert.EqualError(t, err, "hub not authorized to penalize")

	require.NoError(t, m.AuthorizeHub(owner, manager, hub))

	reward, burned, err := m.Penalize(hub, manager, reporter)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), reward)
	assert.Equal(t, big.NewInt(151), burned)
	assert.Equal(t, big.NewInt(150), st.GetBalance(reporter))
	assert.Equal(t, big.NewInt(151), m.TotalBurned())
	assert.Equal(t, &big.Int{}, st.GetBalance(gsn.StakeManagerAddress))

	info := m.GetStakeInfo(manager)
	assert.True(t, info.Penalized)
	assert.Equal(t, &big.Int{}, info.Amount)

	// penalize-once invariant
	_, _, err = m.Penalize(hub, manager, reporter)
	assert.EqualError(t, err, "already penalized")

	// a penalized manager cannot re-stake without a fresh identity
	assert.EqualError(t, m.StakeForManager(owner, manager, token, big.NewInt(10), 100),
		"relay manager was penalized")
}
