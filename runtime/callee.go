// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/Mentors4EDU/gsn/gsn"
)

// Callee is a ledger-resident recipient contract. A Call mutates state only
// through the environment; a returned error is a revert and the hub discards
// the callee's effects.
type Callee interface {
	Call(env *Env, value *big.Int, data []byte) ([]byte, error)
}

// Registry maps ledger addresses to resident callees.
type Registry struct {
	callees map[gsn.Address]Callee
}

// NewRegistry creates an empty callee registry.
func NewRegistry() *Registry {
	return &Registry{callees: make(map[gsn.Address]Callee)}
}

// Register binds a callee to an address, overwriting any previous binding.
func (r *Registry) Register(addr gsn.Address, c Callee) {
	r.callees[addr] = c
}

// Lookup returns the callee bound to addr.
func (r *Registry) Lookup(addr gsn.Address) (Callee, bool) {
	c, ok := r.callees[addr]
	return c, ok
}
