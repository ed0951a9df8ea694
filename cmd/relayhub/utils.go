// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/lvldb"
)

func fatal(args ...any) {
	var w *os.File
	if isatty.IsTerminal(os.Stderr.Fd()) {
		w = os.Stderr
	} else {
		w = os.Stdout
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	var lvl slog.LevelVar
	lvl.Set(level)

	if ctx.Bool(jsonLogsFlag.Name) {
		log.SetDefault(log.JSONHandlerWithLevel(os.Stderr, &lvl))
		return
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewTerminalHandlerWithLevel(os.Stderr, &lvl, useColor))
}

// openDB opens the ledger database under the data dir, or an in-memory
// store when no dir is given.
func openDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		logger.Info("no data-dir given, running in-memory")
		return lvldb.NewMem()
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}
	return lvldb.New(filepath.Join(dataDir, "ledger.db"), lvldb.Options{})
}
