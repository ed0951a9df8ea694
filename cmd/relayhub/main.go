// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/Mentors4EDU/gsn/api"
	"github.com/Mentors4EDU/gsn/forwarder"
	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/hub"
	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/metrics"
	"github.com/Mentors4EDU/gsn/penalty"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/stake"
	"github.com/Mentors4EDU/gsn/state"
)

var (
	version   string
	gitCommit string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if version == "" {
		return "dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "RelayHub",
		Usage:     "Meta-transaction relay hub",
		Copyright: "2026 The Gas Station Network developers",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			enableMetricsFlag,
			jsonLogsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	cfg, minimumStakes, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		fatal(err)
	}

	db, err := openDB(ctx)
	if err != nil {
		fatal(err)
	}
	defer func() { logger.Info("closing ledger database..."); db.Close() }()

	st := state.New(db)
	registry := runtime.NewRegistry()
	stakes := stake.New(gsn.StakeManagerAddress, st)
	fwd := forwarder.New(gsn.ForwarderAddress, st, registry)
	h := hub.New(gsn.RelayHubAddress, st, stakes, fwd, cfg)
	p := penalty.New(h)

	if len(minimumStakes) > 0 {
		var tokens []gsn.Address
		var amounts []*big.Int
		for token, amount := range minimumStakes {
			tokens = append(tokens, token)
			amounts = append(amounts, amount)
		}
		if err := h.SetMinimumStakes(cfg.Owner, tokens, amounts); err != nil {
			fatal("apply minimum stakes:", err)
		}
	}

	handler := api.New(h, p, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
		LogRequests:    true,
	})
	srv := &http.Server{Addr: ctx.String(apiAddrFlag.Name), Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API service started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fatal(err)
		}
	case sig := <-quit:
		logger.Info("shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}

	// persist the ledger state
	stage, err := st.Stage()
	if err != nil {
		fatal("stage state:", err)
	}
	if err := stage.Commit(); err != nil {
		fatal("commit state:", err)
	}
	logger.Info("ledger state committed")
	return nil
}
