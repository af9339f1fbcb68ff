// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] to record the status code
// and body size of a response as it streams out. withLogging reads both for
// the access-log line and withMetrics turns the status into a label, so
// neither has to buffer the body to observe it.
type responseWriter struct {
	http.ResponseWriter

	// status is set by the first WriteHeader call and zero before it.
	status int

	// wroteHeader blocks repeat WriteHeader calls from reaching the
	// underlying writer.
	wroteHeader bool

	// size accumulates bytes successfully written across all Write calls.
	size int
}

// WriteHeader records statusCode and forwards it downstream exactly once.
// Later calls are no-ops, per the [http.ResponseWriter] contract.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write sends b downstream and adds the bytes actually written to size.
// A Write before any WriteHeader implies status 200, as in net/http.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
