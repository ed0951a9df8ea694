// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mentors4EDU/gsn/gsn"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, stakes, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, gsn.RelayCallGasOverhead, cfg.GasOverhead)
	assert.Equal(t, gsn.DefaultMaxWorkerCount, cfg.MaxWorkerCount)
	assert.Empty(t, stakes)
}

func TestLoadConfigFile(t *testing.T) {
	content := `
owner: "0x0000000000000000000000000000000000000001"
trustedGateway: "0x0000000000000000000000000000000000000002"
maxWorkerCount: 3
minimumUnstakeDelay: 1000
minimumStakes:
  "0x0000000000000000000000000000000000000010": "500000"
`
	path := filepath.Join(t.TempDir(), "hub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, stakes, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, gsn.MustParseAddress("0x0000000000000000000000000000000000000001"), cfg.Owner)
	assert.Equal(t, gsn.MustParseAddress("0x0000000000000000000000000000000000000002"), cfg.TrustedGateway)
	assert.Equal(t, uint64(3), cfg.MaxWorkerCount)
	assert.Equal(t, uint64(1000), cfg.MinimumUnstakeDelay)
	// unset values keep the protocol defaults
	assert.Equal(t, gsn.RelayCallGasOverhead, cfg.GasOverhead)

	token := gsn.MustParseAddress("0x0000000000000000000000000000000000000010")
	assert.Equal(t, big.NewInt(500000), stakes[token])
}

func TestLoadConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hub.yaml")

	require.NoError(t, os.WriteFile(path, []byte("owner: \"nope\""), 0600))
	_, _, err := loadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(": not yaml"), 0600))
	_, _, err = loadConfig(path)
	assert.Error(t, err)

	_, _, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
