// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/state"
)

// Context carries the submission environment of one serialized ledger
// transaction: where in the chain it runs and what the submitter pays the
// network per unit of gas.
type Context struct {
	BlockNumber uint64
	Time        uint64
	GasPrice    *big.Int // effective price the submitter actually pays
	PriorityFee *big.Int // effective priority fee of the submission
}

// Env is the execution environment handed to ledger-resident callees.
// It scopes state access, identifies the caller and meters computation.
type Env struct {
	state  *state.State
	ctx    *Context
	caller gsn.Address
	meter  *Meter
}

// NewEnv creates a top-level execution environment.
func NewEnv(st *state.State, ctx *Context, caller gsn.Address, budget uint64) *Env {
	return &Env{
		state:  st,
		ctx:    ctx,
		caller: caller,
		meter:  NewMeter(budget),
	}
}

// State returns the ledger state.
func (e *Env) State() *state.State { return e.state }

// Context returns the submission context.
func (e *Env) Context() *Context { return e.ctx }

// Caller returns the account on whose behalf the callee runs.
func (e *Env) Caller() gsn.Address { return e.caller }

// UseGas consumes computation from the environment's budget.
func (e *Env) UseGas(gas uint64) error { return e.meter.Use(gas) }

// GasUsed returns computation consumed so far.
func (e *Env) GasUsed() uint64 { return e.meter.Used() }

// Call runs fn in a sub-environment with its own budget, attributed to
// caller. Gas spent by the sub-environment is consumed from the parent even
// when fn fails. A panic inside fn is captured and treated as a failure,
// never propagated past the call boundary.
func (e *Env) Call(caller gsn.Address, budget uint64, fn func(sub *Env) error) (err error) {
	if budget > e.meter.Remaining() {
		budget = e.meter.Remaining()
	}
	sub := &Env{
		state:  e.state,
		ctx:    e.ctx,
		caller: caller,
		meter:  NewMeter(budget),
	}
	defer func() {
		e.meter.Use(sub.meter.Used())
		if r := recover(); r != nil {
			err = errors.Errorf("callee panic: %v", r)
		}
	}()
	if err := e.meter.Use(gsn.CallGas); err != nil {
		return err
	}
	return fn(sub)
}
