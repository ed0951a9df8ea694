// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
)

func workerManagerKey(worker gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("worker-manager"), worker.Bytes())
}

func workerCountKey(manager gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("worker-count"), manager.Bytes())
}

func minimumStakeKey(token gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("minimum-stake"), token.Bytes())
}

// WorkerManager returns the relay manager the given worker belongs to.
func (h *Hub) WorkerManager(worker gsn.Address) (gsn.Address, bool) {
	var manager gsn.Address
	h.state.GetStructuredStorage(h.addr, workerManagerKey(worker), &manager)
	return manager, !manager.IsZero()
}

// WorkerCount returns how many workers the given manager has registered.
func (h *Hub) WorkerCount(manager gsn.Address) uint64 {
	var count uint64
	h.state.GetStructuredStorage(h.addr, workerCountKey(manager), &count)
	return count
}

// AddRelayWorkers binds workers to the calling relay manager. The binding is
// permanent; a worker can never be handed to another manager. The manager
// must already pass the staking check.
func (h *Hub) AddRelayWorkers(manager gsn.Address, workers []gsn.Address) error {
	if err := h.enter(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.verifyManagerStaked(manager); err != nil {
		return err
	}
	count := h.WorkerCount(manager)
	var fresh []gsn.Address
	for _, worker := range workers {
		if owner, ok := h.WorkerManager(worker); ok {
			if owner == manager {
				continue
			}
			return errors.New("this worker has a manager")
		}
		fresh = append(fresh, worker)
	}
	if count+uint64(len(fresh)) > h.cfg.MaxWorkerCount {
		return errors.New("too many workers")
	}
	for _, worker := range fresh {
		h.state.SetStructuredStorage(h.addr, workerManagerKey(worker), manager)
		count++
	}
	h.state.SetStructuredStorage(h.addr, workerCountKey(manager), count)

	logger.Debug("workers added", "manager", manager, "count", count)
	return nil
}

// SetMinimumStakes configures the per-token minimum stake table. Owner only.
// A zero or absent minimum forbids the token.
func (h *Hub) SetMinimumStakes(caller gsn.Address, tokens []gsn.Address, minimums []*big.Int) error {
	if err := h.enter(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if caller != h.cfg.Owner {
		return errors.New("caller is not the hub owner")
	}
	if len(tokens) != len(minimums) {
		return errors.New("token and minimum counts differ")
	}
	for i, token := range tokens {
		if minimums[i].Sign() == 0 {
			h.state.SetRawStorage(h.addr, minimumStakeKey(token), nil)
			continue
		}
		h.state.SetStructuredStorage(h.addr, minimumStakeKey(token), minimums[i])
	}
	return nil
}

// MinimumStake returns the configured minimum stake for the token, or zero
// when the token is forbidden.
func (h *Hub) MinimumStake(token gsn.Address) *big.Int {
	var minimum big.Int
	h.state.GetStructuredStorage(h.addr, minimumStakeKey(token), &minimum)
	return &minimum
}

// verifyManagerStaked runs the ordered staking check; the first failing
// condition determines the reason.
func (h *Hub) verifyManagerStaked(manager gsn.Address) error {
	info := h.stakes.GetStakeInfo(manager)
	if info.IsEmpty() {
		return errors.New("relay manager not staked")
	}
	minimum := h.MinimumStake(info.Token)
	if minimum.Sign() == 0 {
		return errors.New("staking this token is forbidden")
	}
	if info.Amount.Cmp(minimum) < 0 {
		return errors.New("stake amount is too low")
	}
	if info.UnstakeDelay < h.cfg.MinimumUnstakeDelay {
		return errors.New("unstake delay is too low")
	}
	if !h.stakes.IsHubAuthorized(manager, h.addr) {
		return errors.New("this hub is not authorized")
	}
	if info.WithdrawTime != 0 {
		return errors.New("stake withdrawal is scheduled")
	}
	return nil
}
