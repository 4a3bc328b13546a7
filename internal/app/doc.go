// Package app provides application initialization and lifecycle
// management for the support stats web service. It wires configuration,
// logging, paths, services, the HTTP router and the server together at
// startup and handles graceful shutdown.
//
// # Initialization flow
//
//	1. Load configuration from environment and files
//	2. Initialize the structured logger
//	3. Resolve and ensure filesystem paths
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful shutdown
//
// Run handles SIGINT and SIGTERM so active requests complete before the
// process exits. Initialization errors are returned to the caller; the
// package never calls os.Exit directly.
package app
