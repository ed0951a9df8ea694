// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"
)

// ErrOutOfGas is returned when a callee exceeds its computation budget.
var ErrOutOfGas = errors.New("out of gas")

// Meter tracks computation spent against a fixed budget.
type Meter struct {
	limit uint64
	used  uint64
}

// NewMeter creates a meter with the given budget.
func NewMeter(limit uint64) *Meter {
	return &Meter{limit: limit}
}

// Use consumes gas. It returns ErrOutOfGas if the budget is exceeded;
// the meter is then pinned at its limit.
func (m *Meter) Use(gas uint64) error {
	if m.used+gas > m.limit {
		m.used = m.limit
		return ErrOutOfGas
	}
	m.used += gas
	return nil
}

// Used returns gas consumed so far.
func (m *Meter) Used() uint64 {
	return m.used
}

// Limit returns the budget.
func (m *Meter) Limit() uint64 {
	return m.limit
}

// Remaining returns gas left in the budget.
func (m *Meter) Remaining() uint64 {
	return m.limit - m.used
}
