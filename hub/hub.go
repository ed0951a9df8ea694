// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package hub implements the relay hub: the fee ledger funding relayed
// executions, the authorization gate binding relay workers to staked
// managers, and the relay-call state machine settling charges between
// paymasters and relay managers.
package hub

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/forwarder"
	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/metrics"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/stake"
	"github.com/Mentors4EDU/gsn/state"
)

var (
	logger = log.WithContext("pkg", "hub")

	metricRelayedCalls = metrics.LazyLoadCounterVec("relayed_call_count", []string{"status"})
	metricGasUsed      = metrics.LazyLoadHistogram("relayed_call_gas_used_kgas", metrics.BucketGas)
)

// Hub is the ledger-resident relay hub. All mutating entry points serialize
// behind one mutex; state checkpoints scope the nested execution inside a
// relay call.
type Hub struct {
	addr       gsn.Address
	state      *state.State
	stakes     *stake.Manager
	fwd        *forwarder.Forwarder
	cfg        *Config
	paymasters map[gsn.Address]runtime.Paymaster

	mu       sync.Mutex
	inFlight atomic.Bool
}

// enter rejects mutating entry while a relayed call is executing. Paymaster
// hooks and recipients run inside RelayCall's critical section; letting them
// re-enter the hub would deadlock on the mutex. A concurrent caller hitting
// the guard can retry once the call settles.
func (h *Hub) enter() error {
	if h.inFlight.Load() {
		return errors.New("relayed call in flight")
	}
	return nil
}

// New create a new instance.
func New(addr gsn.Address, st *state.State, stakes *stake.Manager, fwd *forwarder.Forwarder, cfg *Config) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Hub{
		addr:       addr,
		state:      st,
		stakes:     stakes,
		fwd:        fwd,
		cfg:        cfg,
		paymasters: make(map[gsn.Address]runtime.Paymaster),
	}
}

// Address returns the hub's ledger address.
func (h *Hub) Address() gsn.Address { return h.addr }

// Config returns the hub's fixed configuration.
func (h *Hub) Config() *Config { return h.cfg }

// Stakes returns the stake registry the hub's gate consults.
func (h *Hub) Stakes() *stake.Manager { return h.stakes }

// Forwarder returns the forwarding layer the hub dispatches through.
func (h *Hub) Forwarder() *forwarder.Forwarder { return h.fwd }

// RegisterPaymaster binds a paymaster implementation to its ledger address.
func (h *Hub) RegisterPaymaster(addr gsn.Address, pm runtime.Paymaster) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paymasters[addr] = pm
}

// Paymaster looks up the paymaster bound to the given address.
func (h *Hub) Paymaster(addr gsn.Address) (runtime.Paymaster, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	pm, ok := h.paymasters[addr]
	return pm, ok
}

// Penalize slashes the manager behind the given worker on behalf of the
// penalization engine. Only the configured penalizer address may call it.
func (h *Hub) Penalize(caller, worker, beneficiary gsn.Address) error {
	if err := h.enter(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if caller != gsn.PenalizerAddress {
		return errors.New("caller is not the penalizer")
	}
	manager, ok := h.WorkerManager(worker)
	if !ok {
		// the evidence may name the manager itself
		manager = worker
	}
	reward, burned, err := h.stakes.Penalize(h.addr, manager, beneficiary)
	if err != nil {
		return err
	}
	logger.Warn("relay manager penalized",
		"manager", manager, "worker", worker, "reward", reward, "burned", burned)
	return nil
}
