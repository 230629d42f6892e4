// Package server wires and runs the catalog's HTTP server.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown of the listener together with the background workers.
package server
