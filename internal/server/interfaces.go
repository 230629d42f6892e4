package server

import "context"

// Server defines the lifecycle contract of the catalog server.
//
// RunServer blocks until the process receives a stop signal or ctx is
// cancelled, then shuts down gracefully.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// BackgroundWorkers is the part of workers.Workers the server drives.
type BackgroundWorkers interface {
	Run(ctx context.Context)
	Stop()
}
