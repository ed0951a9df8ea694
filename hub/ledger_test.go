// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mentors4EDU/gsn/forwarder"
	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/lvldb"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/stake"
	"github.com/Mentors4EDU/gsn/state"
)

func newLedgerHub(t *testing.T) (*Hub, *state.State) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(kv)
	stakes := stake.New(gsn.StakeManagerAddress, st)
	fwd := forwarder.New(gsn.ForwarderAddress, st, runtime.NewRegistry())
	return New(gsn.RelayHubAddress, st, stakes, fwd, DefaultConfig()), st
}

func TestDepositAndWithdraw(t *testing.T) {
	h, st := newLedgerHub(t)
	alice := gsn.BytesToAddress([]byte("alice"))
	paymaster := gsn.BytesToAddress([]byte("paymaster"))
	dest := gsn.BytesToAddress([]byte("dest"))

	st.SetBalance(alice, big.NewInt(1000))

	require.NoError(t, h.DepositFor(alice, paymaster, big.NewInt(600)))
	assert.Equal(t, big.NewInt(600), h.BalanceOf(paymaster))
	assert.Equal(t, big.NewInt(400), st.GetBalance(alice))
	assert.Equal(t, big.NewInt(600), st.GetBalance(gsn.RelayHubAddress))
	assert.Equal(t, big.NewInt(600), h.TotalDeposited())

	assert.EqualError(t, h.DepositFor(alice, paymaster, big.NewInt(10000)),
		"insufficient balance for deposit")
	assert.EqualError(t, h.DepositFor(alice, paymaster, new(big.Int)),
		"deposit amount must be positive")

	require.NoError(t, h.Withdraw(paymaster, big.NewInt(200), dest))
	assert.Equal(t, big.NewInt(400), h.BalanceOf(paymaster))
	assert.Equal(t, big.NewInt(200), st.GetBalance(dest))
	assert.Equal(t, big.NewInt(200), h.TotalWithdrawn())

	// overdrawing is rejected, never wrapped
	assert.EqualError(t, h.Withdraw(paymaster, big.NewInt(401), dest),
		"insufficient ledger balance")
	assert.Equal(t, big.NewInt(400), h.BalanceOf(paymaster))
}

func TestLedgerConservation(t *testing.T) {
	h, st := newLedgerHub(t)
	alice := gsn.BytesToAddress([]byte("alice"))
	a := gsn.BytesToAddress([]byte("a"))
	b := gsn.BytesToAddress([]byte("b"))

	st.SetBalance(alice, big.NewInt(1000))
	require.NoError(t, h.DepositFor(alice, a, big.NewInt(700)))
	require.NoError(t, h.DepositFor(alice, b, big.NewInt(300)))
	require.NoError(t, h.chargeLedger(a, b, big.NewInt(250)))
	require.NoError(t, h.Withdraw(b, big.NewInt(100), alice))

	sum := new(big.Int).Add(h.BalanceOf(a), h.BalanceOf(b))
	expected := new(big.Int).Sub(h.TotalDeposited(), h.TotalWithdrawn())
	assert.Equal(t, expected, sum)

	// internal moves cannot overdraw either
	assert.EqualError(t, h.chargeLedger(a, b, big.NewInt(100000)),
		"insufficient ledger balance")
}
