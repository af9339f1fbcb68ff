// Package server runs the HTTP server and the background workers under a
// single lifecycle: one termination signal drains in-flight requests and
// stops the workers.
package server
