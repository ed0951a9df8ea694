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

var (
	totalDepositedKey = gsn.Blake2b([]byte("total-deposited"))
	totalWithdrawnKey = gsn.Blake2b([]byte("total-withdrawn"))
)

func balanceKey(account gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("ledger-balance"), account.Bytes())
}

// BalanceOf returns the hub ledger balance of the given account.
func (h *Hub) BalanceOf(account gsn.Address) *big.Int {
	var bal big.Int
	h.state.GetStructuredStorage(h.addr, balanceKey(account), &bal)
	return &bal
}

func (h *Hub) setBalance(account gsn.Address, bal *big.Int) {
	if bal.Sign() == 0 {
		h.state.SetRawStorage(h.addr, balanceKey(account), nil)
		return
	}
	h.state.SetStructuredStorage(h.addr, balanceKey(account), bal)
}

// DepositFor moves native balance of from into the hub ledger balance of
// account. Anyone may fund any account.
func (h *Hub) DepositFor(from, account gsn.Address, amount *big.Int) error {
	if err := h.enter(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if amount.Sign() <= 0 {
		return errors.New("deposit amount must be positive")
	}
	if !h.state.SubBalance(from, amount) {
		return errors.New("insufficient balance for deposit")
	}
	h.state.AddBalance(h.addr, amount)

	h.setBalance(account, new(big.Int).Add(h.BalanceOf(account), amount))
	h.addTotal(totalDepositedKey, amount)

	logger.Debug("deposit", "from", from, "account", account, "amount", amount)
	return nil
}

// Withdraw moves part of the caller's own ledger balance back out to the
// native balance of dest. Overdrawing is rejected outright.
func (h *Hub) Withdraw(account gsn.Address, amount *big.Int, dest gsn.Address) error {
	if err := h.enter(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if amount.Sign() <= 0 {
		return errors.New("withdraw amount must be positive")
	}
	bal := h.BalanceOf(account)
	if bal.Cmp(amount) < 0 {
		return errors.New("insufficient ledger balance")
	}
	h.setBalance(account, new(big.Int).Sub(bal, amount))

	if !h.state.SubBalance(h.addr, amount) {
		return errors.New("ledger escrow underflow")
	}
	h.state.AddBalance(dest, amount)
	h.addTotal(totalWithdrawnKey, amount)

	logger.Debug("withdraw", "account", account, "dest", dest, "amount", amount)
	return nil
}

// TotalDeposited returns the cumulative amount ever deposited.
func (h *Hub) TotalDeposited() *big.Int { return h.getTotal(totalDepositedKey) }

// TotalWithdrawn returns the cumulative amount ever withdrawn.
func (h *Hub) TotalWithdrawn() *big.Int { return h.getTotal(totalWithdrawnKey) }

func (h *Hub) getTotal(key gsn.Bytes32) *big.Int {
	var total big.Int
	h.state.GetStructuredStorage(h.addr, key, &total)
	return &total
}

func (h *Hub) addTotal(key gsn.Bytes32, amount *big.Int) {
	total := h.getTotal(key)
	h.state.SetStructuredStorage(h.addr, key, total.Add(total, amount))
}

// charge moves amount from the payer's ledger balance to the payee's, in one
// step. The ledger sum is conserved.
func (h *Hub) chargeLedger(payer, payee gsn.Address, amount *big.Int) error {
	bal := h.BalanceOf(payer)
	if bal.Cmp(amount) < 0 {
		return errors.New("insufficient ledger balance")
	}
	h.setBalance(payer, new(big.Int).Sub(bal, amount))
	h.setBalance(payee, new(big.Int).Add(h.BalanceOf(payee), amount))
	return nil
}
