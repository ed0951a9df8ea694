// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mentors4EDU/gsn/tx"
)

func TestCalculateCharge(t *testing.T) {
	gwei := big.NewInt(1_000_000_000)

	tests := []struct {
		name     string
		gasUsed  uint64
		price    *big.Int
		pctFee   uint64
		baseFee  *big.Int
		expected *big.Int
	}{
		{
			name:    "typical",
			gasUsed: 100000, price: gwei, pctFee: 10, baseFee: big.NewInt(10000),
			// 100000 × 1e9 × 110 / 100 + 10000
			expected: new(big.Int).Add(big.NewInt(110_000_000_000_000), big.NewInt(10000)),
		},
		{
			name:    "no fees",
			gasUsed: 21000, price: big.NewInt(1), pctFee: 0, baseFee: new(big.Int),
			expected: big.NewInt(21000),
		},
		{
			name:    "floor division",
			gasUsed: 1, price: big.NewInt(1), pctFee: 50, baseFee: new(big.Int),
			// 1 × 1 × 150 / 100 floors to 1
			expected: big.NewInt(1),
		},
		{
			name:    "base fee only",
			gasUsed: 0, price: gwei, pctFee: 10, baseFee: big.NewInt(777),
			expected: big.NewInt(777),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &tx.RelayData{PctRelayFee: tt.pctFee, BaseRelayFee: tt.baseFee}
			assert.Equal(t, tt.expected, CalculateCharge(tt.gasUsed, tt.price, data))
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	data := &tx.RelayData{MaxFeePerGas: big.NewInt(100)}

	// the client-agreed cap wins when the relay paid more
	assert.Equal(t, big.NewInt(100), EffectivePrice(data, big.NewInt(150)))
	// the actual price wins when below the cap
	assert.Equal(t, big.NewInt(80), EffectivePrice(data, big.NewInt(80)))
	assert.Equal(t, big.NewInt(100), EffectivePrice(data, big.NewInt(100)))
}
