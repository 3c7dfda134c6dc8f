// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and stubbed in tests.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Documents
	Collection DocumentCollection

	// Key-value
	KeyValueStore KeyValueStore

	// Infrastructure
	Logger Logger
	Health SystemHealthChecker
}
