// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/hub"
)

// fileConfig is the yaml shape of the hub configuration file.
type fileConfig struct {
	Owner               string            `yaml:"owner"`
	TrustedGateway      string            `yaml:"trustedGateway"`
	GasOverhead         uint64            `yaml:"gasOverhead"`
	PostOverhead        uint64            `yaml:"postOverhead"`
	MaxWorkerCount      uint64            `yaml:"maxWorkerCount"`
	MinimumUnstakeDelay uint64            `yaml:"minimumUnstakeDelay"`
	MaxAcceptanceBudget uint64            `yaml:"maxAcceptanceBudget"`
	MinimumStakes       map[string]string `yaml:"minimumStakes"` // token address -> amount
}

// loadConfig reads the yaml file and merges it over the protocol defaults.
// The returned stake table is applied to the hub after construction.
func loadConfig(path string) (*hub.Config, map[gsn.Address]*big.Int, error) {
	cfg := hub.DefaultConfig()
	stakes := make(map[gsn.Address]*big.Int)
	if path == "" {
		return cfg, stakes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "read config")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, nil, errors.WithMessage(err, "parse config")
	}

	if fc.Owner != "" {
		if cfg.Owner, err = gsn.ParseAddress(fc.Owner); err != nil {
			return nil, nil, errors.WithMessage(err, "owner")
		}
	}
	if fc.TrustedGateway != "" {
		if cfg.TrustedGateway, err = gsn.ParseAddress(fc.TrustedGateway); err != nil {
			return nil, nil, errors.WithMessage(err, "trustedGateway")
		}
	}
	if fc.GasOverhead != 0 {
		cfg.GasOverhead = fc.GasOverhead
	}
	if fc.PostOverhead != 0 {
		cfg.PostOverhead = fc.PostOverhead
	}
	if fc.MaxWorkerCount != 0 {
		cfg.MaxWorkerCount = fc.MaxWorkerCount
	}
	if fc.MinimumUnstakeDelay != 0 {
		cfg.MinimumUnstakeDelay = fc.MinimumUnstakeDelay
	}
	if fc.MaxAcceptanceBudget != 0 {
		cfg.MaxAcceptanceBudget = fc.MaxAcceptanceBudget
	}

	for tokenStr, amountStr := range fc.MinimumStakes {
		token, err := gsn.ParseAddress(tokenStr)
		if err != nil {
			return nil, nil, errors.WithMessage(err, "minimumStakes token")
		}
		amount, ok := new(big.Int).SetString(amountStr, 10)
		if !ok {
			return nil, nil, errors.Errorf("minimumStakes: bad amount %q", amountStr)
		}
		stakes[token] = amount
	}
	return cfg, stakes, nil
}
