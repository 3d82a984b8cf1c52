// Package server runs the HTTP server of the application.
//
// It owns startup, signal handling, and graceful shutdown: SIGINT, SIGTERM
// and SIGQUIT stop accepting connections and let in-flight requests finish.
package server
