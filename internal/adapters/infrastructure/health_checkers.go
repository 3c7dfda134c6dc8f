package infrastructure

import (
	"context"

	"nosqlkit.app/internal/ports"
)

// Pinger is anything whose connectivity can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthChecker reports the health of a backing store through Ping
type StoreHealthChecker struct {
	component string
	store     Pinger
	details   map[string]interface{}
	stats     func() map[string]interface{}
}

// NewKeyValueStoreHealthChecker creates a health checker for the key-value store
func NewKeyValueStoreHealthChecker(store ports.KeyValueStore, storeType string) *StoreHealthChecker {
	return &StoreHealthChecker{
		component: "keyValueStore",
		store:     store,
		details:   map[string]interface{}{"type": storeType},
	}
}

// NewDocumentStoreHealthChecker creates a health checker for the document collection
func NewDocumentStoreHealthChecker(coll ports.DocumentCollection, storeType string) *StoreHealthChecker {
	details := map[string]interface{}{"type": storeType}
	var store Pinger
	if coll != nil {
		details["collection"] = coll.Name()
		store = coll
	}
	return &StoreHealthChecker{
		component: "documentStore",
		store:     store,
		details:   details,
	}
}

// WithStats attaches usage statistics to healthy reports
func (s *StoreHealthChecker) WithStats(stats func() map[string]interface{}) *StoreHealthChecker {
	s.stats = stats
	return s
}

// Check verifies store connectivity
func (s *StoreHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: s.component,
		Details:   make(map[string]interface{}, len(s.details)+1),
	}
	for k, v := range s.details {
		status.Details[k] = v
	}

	if s.store == nil {
		status.Status = "unhealthy"
		status.Error = "store is not configured"
		status.Details["connected"] = false
		return status
	}

	if err := s.store.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		status.Details["connected"] = false
		return status
	}

	status.Status = "healthy"
	status.Details["connected"] = true
	if s.stats != nil {
		status.Details["stats"] = s.stats()
	}
	return status
}

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DocumentStoreChecker ports.HealthChecker
	KeyValueStoreChecker ports.HealthChecker
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.DocumentStoreChecker != nil {
		checkers["documentStore"] = config.DocumentStoreChecker
	}
	if config.KeyValueStoreChecker != nil {
		checkers["keyValueStore"] = config.KeyValueStoreChecker
	}
	return &SystemHealthChecker{checkers: checkers}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}
	return results
}
