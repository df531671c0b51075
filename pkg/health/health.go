// Package health checks that a running simulation is still sound. The
// headless host runs these after a soak run and fails when any check does.
package health

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health of a run.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// Healthy reports whether every check passed
func (s HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// Failed lists the names of the failing checks in order
func (s HealthStatus) Failed() []string {
	var names []string
	for name, c := range s.Checks {
		if c.Status != "healthy" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a new health check with the health checker.
// If a check with the same name already exists, it will be replaced.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth executes all registered health checks and returns the aggregated status.
// The overall status is "healthy" only if all individual checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// GameLoopHealthCheck fails when the frame counter has not moved since the
// previous check.
type GameLoopHealthCheck struct {
	mu     sync.Mutex
	frames func() uint64
	last   uint64
	seen   bool
}

// NewGameLoopHealthCheck creates a health check over a frame counter.
func NewGameLoopHealthCheck(frames func() uint64) *GameLoopHealthCheck {
	return &GameLoopHealthCheck{frames: frames}
}

// Name returns the name of this health check.
func (g *GameLoopHealthCheck) Name() string {
	return "game_loop"
}

// Check verifies that the loop stepped at least once since the last call.
func (g *GameLoopHealthCheck) Check(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	current := g.frames()
	stalled := current == 0 || (g.seen && current == g.last)
	g.last, g.seen = current, true
	if stalled {
		return fmt.Errorf("game loop stalled at frame %d", current)
	}
	return nil
}

// EntityBudgetHealthCheck fails when more entities are alive than the
// budget allows, which points at a leak in destruction.
type EntityBudgetHealthCheck struct {
	maxEntities int
	count       func() int
}

// NewEntityBudgetHealthCheck creates a health check over the live entity count.
func NewEntityBudgetHealthCheck(maxEntities int, count func() int) *EntityBudgetHealthCheck {
	return &EntityBudgetHealthCheck{
		maxEntities: maxEntities,
		count:       count,
	}
}

// Name returns the name of this health check.
func (e *EntityBudgetHealthCheck) Name() string {
	return "entities"
}

// Check verifies the entity count is within budget.
func (e *EntityBudgetHealthCheck) Check(ctx context.Context) error {
	if n := e.count(); n > e.maxEntities {
		return fmt.Errorf("%d live entities exceeds budget %d", n, e.maxEntities)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage. A nil
// getMemoryUsage reads the Go heap.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = HeapAllocMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// HeapAllocMB returns the allocated heap in megabytes
func HeapAllocMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
