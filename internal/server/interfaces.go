package server

// Server is the lifecycle contract for a transport server managed by this
// package: RunServer blocks until shutdown is requested, Shutdown drains
// in-flight requests and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
