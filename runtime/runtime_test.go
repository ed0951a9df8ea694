// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/lvldb"
	"github.com/Mentors4EDU/gsn/state"
)

func newTestEnv(budget uint64) *Env {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	ctx := &Context{BlockNumber: 1, Time: 1000, GasPrice: big.NewInt(1), PriorityFee: big.NewInt(1)}
	return NewEnv(st, ctx, gsn.BytesToAddress([]byte("caller")), budget)
}

func TestMeter(t *testing.T) {
	m := NewMeter(100)
	assert.NoError(t, m.Use(60))
	assert.Equal(t, uint64(60), m.Used())
	assert.Equal(t, uint64(40), m.Remaining())

	assert.Equal(t, ErrOutOfGas, m.Use(41))
	// pinned at limit once exceeded
	assert.Equal(t, uint64(100), m.Used())
}

func TestEnvCallBudget(t *testing.T) {
	env := newTestEnv(100000)

	err := env.Call(gsn.BytesToAddress([]byte("callee")), 1000, func(sub *Env) error {
		return sub.UseGas(2000)
	})
	assert.Equal(t, ErrOutOfGas, errors.Cause(err))
	// the sub budget is spent in the parent even though the call failed
	assert.Equal(t, uint64(1000)+gsn.CallGas, env.GasUsed())
}

func TestEnvCallPanicCaptured(t *testing.T) {
	env := newTestEnv(100000)

	err := env.Call(gsn.BytesToAddress([]byte("callee")), 1000, func(_ *Env) error {
		panic("misbehaving callee")
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "callee panic")
}

func TestEnvCallStateVisibility(t *testing.T) {
	env := newTestEnv(100000)
	addr := gsn.BytesToAddress([]byte("acc"))

	err := env.Call(addr, 10000, func(sub *Env) error {
		sub.State().SetBalance(addr, big.NewInt(5))
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(5), env.State().GetBalance(addr))
}
