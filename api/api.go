// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api exposes the relay hub over HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Mentors4EDU/gsn/hub"
	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/metrics"
	"github.com/Mentors4EDU/gsn/penalty"
)

var logger = log.WithContext("pkg", "api")

// Options control the assembled handler.
type Options struct {
	// AllowedOrigins is a comma separated CORS origin list; empty means none.
	AllowedOrigins string
	// EnableMetrics mounts the metrics endpoint under /metrics.
	EnableMetrics bool
	// LogRequests turns on per-request logging.
	LogRequests bool
}

// New returns the assembled api handler.
func New(h *hub.Hub, p *penalty.Penalizer, opts Options) http.Handler {
	router := mux.NewRouter()
	NewHubAPI(h).Mount(router, "/")
	NewPenaltyAPI(p).Mount(router, "/")
	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	handler := http.Handler(router)
	if opts.LogRequests {
		handler = requestLoggerHandler(handler, logger)
	}

	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{"GET", "POST"}),
	)(handler)
}
