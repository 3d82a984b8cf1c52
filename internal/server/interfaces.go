package server

// Server is the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests and blocks until a stop signal has been
	// handled and the server is shut down.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
