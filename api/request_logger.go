// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

type apiLogger interface {
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
}

// requestLoggerHandler returns a http handler that logs every request,
// body included, before passing it on.
func requestLoggerHandler(handler http.Handler, logger apiLogger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		// the body can only be read once; restore it for the real handler
		var bodyBytes []byte
		var err error
		if r.Body != nil {
			bodyBytes, err = io.ReadAll(r.Body)
			if err != nil {
				logger.Warn("unexpected body read error", "err", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		logger.Info("API Request",
			"timestamp", time.Now().Unix(),
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(bodyBytes),
		)

		handler.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
